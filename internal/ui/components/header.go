// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// Header is the one-line screen title bar.
type Header struct {
	Title     string
	SessionID string
	Messages  int
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header titled "Chat".
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Title: "Chat", Width: 80, theme: theme}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render(h.Title)

	var meta []string
	if h.Messages > 0 {
		meta = append(meta, pluralMessages(h.Messages))
	}
	if h.SessionID != "" && h.Width >= 60 {
		meta = append(meta, "session "+h.SessionID)
	}
	right := h.theme.HeaderMeta.Render(strings.Join(meta, " | "))

	inner := h.Width - h.theme.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(inner-lipgloss.Width(title), 0)
	}
	return h.theme.Header.Width(h.Width).Render(title + strings.Repeat(" ", gap) + right)
}
