// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatterm TUI.
// Fixed colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/session"
)

// =============================================================================
// BRAND COLORS
// =============================================================================

// Blue - Default accent, welcome action
var Blue = lipgloss.AdaptiveColor{Light: session.DefaultAccentColor, Dark: session.DefaultAccentColor}

// Rose - Errors, failed turns
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, busy notices
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// BubbleFg is the text color on both bubble kinds.
var BubbleFg = lipgloss.Color("#FFFFFF")

// AssistantBubbleBg is the gray assistant bubble background.
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#8E8E93", Dark: "#636366"}

// AccentColor converts a normalized accent value ("#RRGGBB" or an ANSI
// index) into a lipgloss color. Invalid values fall back to the default.
func AccentColor(value string) lipgloss.Color {
	normalized, err := session.NormalizeColor(value)
	if err != nil {
		return lipgloss.Color(session.DefaultAccentColor)
	}
	return lipgloss.Color(normalized)
}

// =============================================================================
// TOAST COLORS
// =============================================================================

var ToastErrorBg = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#881337"}
var ToastErrorFg = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FECACA"}
var ToastWarnBg = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#78350F"}
var ToastWarnFg = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FEF3C7"}
var ToastInfoBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A5F"}
var ToastInfoFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
}

// StatusIndicators are ASCII-only so they survive any terminal.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
}

// RenderError renders an error message with the X indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderMuted renders secondary notices.
func RenderMuted(message string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(message)
}
