// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme mode names accepted by ui.theme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile
	Mode         string

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	// UserBubble has no background; the accent is applied per render.
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	BubbleHeader    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	SendButton       lipgloss.Style
	SendButtonBusy   lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar      lipgloss.Style
	StatusBarPulse lipgloss.Style
	StatusModel    lipgloss.Style
	StatusIdle     lipgloss.Style
	StatusBusy     lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style
	PickerBox      lipgloss.Style
	PickerTitle    lipgloss.Style
	PickerItem     lipgloss.Style
	PickerSelected lipgloss.Style
	PickerError    lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeLogo   lipgloss.Style
	WelcomeInfo   lipgloss.Style
	WelcomeHint   lipgloss.Style
	WelcomeButton lipgloss.Style
}

// NewTheme creates a new theme with terminal detection.
func NewTheme() *Theme {
	return NewThemeWithMode(ModeAuto)
}

// NewThemeWithMode creates a theme honouring an explicit theme mode.
// "dark" and "light" override background detection for every adaptive color.
func NewThemeWithMode(mode string) *Theme {
	mode = strings.ToLower(strings.TrimSpace(mode))

	colorProfile := termenv.ColorProfile()
	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		mode = ModeAuto
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		Mode:         mode,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(BubbleFg).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Background(AssistantBubbleBg).
		Foreground(BubbleFg).
		Padding(0, 1)

	t.BubbleHeader = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SendButton = lipgloss.NewStyle().
		Foreground(BubbleFg).
		Background(Blue).
		Bold(true).
		Padding(0, 1)

	t.SendButtonBusy = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusBarPulse = lipgloss.NewStyle().
		Background(Emerald).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.StatusModel = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.StatusIdle = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusBusy = lipgloss.NewStyle().
		Foreground(Amber)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Overlays
	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.PickerBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)

	t.PickerTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.PickerItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.PickerSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)

	t.PickerError = lipgloss.NewStyle().
		Foreground(Rose)

	// Welcome screen
	t.WelcomeLogo = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.WelcomeButton = lipgloss.NewStyle().
		Foreground(BubbleFg).
		Background(Blue).
		Bold(true).
		Padding(1, 6)
}

// LayoutFor returns the layout mode for a row width.
func LayoutFor(width int) LayoutMode {
	if width < 60 {
		return LayoutNarrow
	}
	if width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// BubbleWidth returns the maximum bubble width in a row of width columns.
func BubbleWidth(width int) int {
	switch LayoutFor(width) {
	case LayoutNarrow:
		return max(width-4, 10)
	case LayoutMedium:
		return width * 3 / 4
	default:
		return width * 2 / 3
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
