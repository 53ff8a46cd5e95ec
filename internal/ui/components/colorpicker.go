// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// COLOR PICKER COMPONENT - accent presets plus a custom value
// =============================================================================

// ColorPicker is the settings panel for the accent color. Enter applies the
// typed value if there is one, otherwise the highlighted preset.
type ColorPicker struct {
	presets  []session.Preset
	selected int
	input    textinput.Model
	errText  string
	visible  bool
	width    int
	height   int
	theme    *styles.Theme
}

// NewColorPicker creates a hidden color picker.
func NewColorPicker(theme *styles.Theme) *ColorPicker {
	ti := textinput.New()
	ti.Placeholder = "#RRGGBB, #RGB or 0-255"
	ti.CharLimit = 16
	ti.Width = 24
	ti.Prompt = "custom: "
	ti.PromptStyle = theme.PickerItem

	return &ColorPicker{
		presets: session.Presets,
		input:   ti,
		theme:   theme,
	}
}

// Show opens the picker with current highlighted when it is a preset.
func (cp *ColorPicker) Show(current string) tea.Cmd {
	cp.visible = true
	cp.errText = ""
	cp.input.Reset()
	cp.selected = 0
	if i := session.PresetIndex(current); i >= 0 {
		cp.selected = i
	}
	return cp.input.Focus()
}

// Hide closes the picker.
func (cp *ColorPicker) Hide() {
	cp.visible = false
	cp.input.Blur()
}

// IsVisible returns true while the picker is open.
func (cp *ColorPicker) IsVisible() bool {
	return cp.visible
}

// Selected returns the highlighted preset.
func (cp *ColorPicker) Selected() session.Preset {
	return cp.presets[cp.selected]
}

// Error returns the last validation message.
func (cp *ColorPicker) Error() string {
	return cp.errText
}

// SetSize sets the dimensions for centering the picker.
func (cp *ColorPicker) SetSize(width, height int) {
	cp.width = width
	cp.height = height
}

// Update handles messages for the picker.
func (cp *ColorPicker) Update(msg tea.Msg) (*ColorPicker, tea.Cmd) {
	if !cp.visible {
		return cp, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+s":
			cp.Hide()
			return cp, func() tea.Msg { return ColorPickerClosedMsg{} }

		case "enter":
			return cp, cp.choose()

		case "up", "left", "shift+tab":
			cp.selected--
			if cp.selected < 0 {
				cp.selected = len(cp.presets) - 1
			}
			return cp, nil

		case "down", "right", "tab":
			cp.selected++
			if cp.selected >= len(cp.presets) {
				cp.selected = 0
			}
			return cp, nil
		}
	}

	var cmd tea.Cmd
	cp.input, cmd = cp.input.Update(msg)
	return cp, cmd
}

func (cp *ColorPicker) choose() tea.Cmd {
	value := strings.TrimSpace(cp.input.Value())
	if value == "" {
		value = cp.Selected().Color
	}

	normalized, err := session.NormalizeColor(value)
	if err != nil {
		cp.errText = "not a color: " + value
		return nil
	}

	cp.Hide()
	return func() tea.Msg { return ColorChosenMsg{Value: normalized} }
}

// View renders the picker centred in the terminal.
func (cp *ColorPicker) View() string {
	if !cp.visible {
		return ""
	}

	lines := []string{cp.theme.PickerTitle.Render("Accent color"), ""}
	for i, p := range cp.presets {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(p.Color)).Render("    ")
		label := p.Name + " " + p.Color
		if i == cp.selected {
			lines = append(lines, swatch+cp.theme.PickerSelected.Render("> "+label))
		} else {
			lines = append(lines, swatch+cp.theme.PickerItem.Render("  "+label))
		}
	}
	lines = append(lines, "", cp.input.View())
	if cp.errText != "" {
		lines = append(lines, cp.theme.PickerError.Render(cp.errText))
	}
	lines = append(lines, "", styles.RenderMuted("enter apply  |  esc close"))

	box := cp.theme.PickerBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if cp.width <= 0 || cp.height <= 0 {
		return box
	}
	return lipgloss.Place(cp.width, cp.height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// MESSAGES
// =============================================================================

// ColorChosenMsg carries a normalized accent color.
type ColorChosenMsg struct {
	Value string
}

// ColorPickerClosedMsg is sent when the picker is dismissed without a choice.
type ColorPickerClosedMsg struct{}
