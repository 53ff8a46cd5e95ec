// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// init applies NO_COLOR, FORCE_COLOR and TTY detection to lipgloss.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR LINE OUTPUT
// =============================================================================

var (
	// TitleStyle is used for banners
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Blue)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(16)

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// DimStyle is used for hints and failure notices
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// AssistantLabelStyle marks assistant replies in line mode
	AssistantLabelStyle = lipgloss.NewStyle().
				Foreground(styles.AssistantBubbleBg).
				Bold(true)
)

// accentStyle returns a bold style in the given accent color.
func accentStyle(accent string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.AccentColor(accent)).Bold(true)
}
