// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/components"
)

// View renders the active screen.
func (m Model) View() string {
	if m.screen == ScreenWelcome {
		return m.welcome.View()
	}
	return m.renderChat()
}

func (m Model) renderChat() string {
	body := m.chat.View()
	if m.picker.IsVisible() {
		body = m.picker.View()
	}
	if toasts := components.RenderToastStack(m.toasts.Toasts(), m.width); toasts != "" {
		body = overlayBottom(body, toasts)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.input.View(),
		m.status.View(),
	)
}

// overlayBottom replaces the last lines of base with overlay, keeping the
// height of base. An overlay taller than base is cut from the top.
func overlayBottom(base, overlay string) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	if len(overLines) > len(baseLines) {
		overLines = overLines[len(overLines)-len(baseLines):]
	}
	copy(baseLines[len(baseLines)-len(overLines):], overLines)
	return strings.Join(baseLines, "\n")
}
