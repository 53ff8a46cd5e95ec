// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/ui/styles"
	"github.com/jeranaias/chatterm/internal/util"
)

// maxModelWidth caps the model name shown in the status bar.
const maxModelWidth = 28

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the turn state shown in the status bar.
type Status int

const (
	StatusIdle Status = iota
	StatusWaiting
)

// String returns the display label.
func (s Status) String() string {
	if s == StatusWaiting {
		return "waiting for reply"
	}
	return "ready"
}

// Icon returns the ASCII shape for the state.
func (s Status) Icon() string {
	if s == StatusWaiting {
		return styles.StatusIndicators.Pending
	}
	return styles.StatusIndicators.Success
}

// StatusBar is the bottom bar: model, turn state and key hints. It flashes
// while a haptic pulse is active.
type StatusBar struct {
	ModelName string
	Status    Status
	Pulse     bool
	Width     int
	Keys      []key.Binding
	theme     *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		ModelName: model.DefaultModel,
		Status:    StatusIdle,
		Width:     80,
		theme:     theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetModel sets the model name; known ids are shown by their display name.
func (s *StatusBar) SetModel(id string) {
	s.ModelName = model.DisplayName(id)
}

// SetStatus sets the turn state.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetPulse turns the haptic flash on or off.
func (s *StatusBar) SetPulse(active bool) {
	s.Pulse = active
}

// SetKeys sets the bindings shown as hints.
func (s *StatusBar) SetKeys(keys []key.Binding) {
	s.Keys = keys
}

// View renders the status bar across the full width.
func (s *StatusBar) View() string {
	left := s.theme.StatusModel.Render(util.TruncateWidth(s.ModelName, maxModelWidth)) + "  " + s.renderStatus()

	right := ""
	if s.Width >= 60 {
		right = s.renderShortcuts()
	}

	base := s.theme.StatusBar
	if s.Pulse {
		base = s.theme.StatusBarPulse
	}

	inner := s.Width - base.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = inner - lipgloss.Width(left)
	}
	if gap < 0 {
		left = lipgloss.NewStyle().MaxWidth(max(inner, 0)).Render(left)
		gap = 0
	}

	return base.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) renderStatus() string {
	style := s.theme.StatusIdle
	if s.Status == StatusWaiting {
		style = s.theme.StatusBusy
	}
	return style.Render(s.Status.Icon() + " " + s.Status.String())
}

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	hints := make([]string, 0, len(s.Keys))
	for _, k := range s.Keys {
		if !k.Enabled() {
			continue
		}
		h := k.Help()
		hints = append(hints, s.theme.ShortcutKey.Render(h.Key)+" "+s.theme.ShortcutDesc.Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}
