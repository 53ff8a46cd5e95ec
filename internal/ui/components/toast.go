// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
	"github.com/jeranaias/chatterm/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastKindInfo ToastKind = iota
	ToastKindWarning
	ToastKindError
)

const (
	// InfoToastDuration is the auto-dismiss duration for info toasts.
	InfoToastDuration = 3 * time.Second
	// WarningToastDuration is the auto-dismiss duration for warning toasts.
	WarningToastDuration = 4 * time.Second
	// ErrorToastDuration is longer so failures can be read.
	ErrorToastDuration = 6 * time.Second
)

// MaxToasts is the number of toasts visible at once.
const MaxToasts = 3

// Toast is a transient notice drawn over the chat. It never becomes part of
// the transcript.
type Toast struct {
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ExpiredAt reports whether the toast should be gone at t.
func (t Toast) ExpiredAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager manages the visible toasts, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// WithClock replaces the time source.
func (m *ToastManager) WithClock(now func() time.Time) *ToastManager {
	m.now = now
	return m
}

func (m *ToastManager) add(kind ToastKind, message string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  d,
	}

	// A repeated notice replaces the older copy instead of stacking.
	kept := m.toasts[:0]
	for _, existing := range m.toasts {
		if existing.Message != message || existing.Kind != kind {
			kept = append(kept, existing)
		}
	}
	m.toasts = append([]Toast{t}, kept...)
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[:MaxToasts]
	}
}

// AddInfo adds an info toast.
func (m *ToastManager) AddInfo(message string) {
	m.add(ToastKindInfo, message, InfoToastDuration)
}

// AddWarning adds a warning toast.
func (m *ToastManager) AddWarning(message string) {
	m.add(ToastKindWarning, message, WarningToastDuration)
}

// AddError adds an error toast.
func (m *ToastManager) AddError(message string) {
	m.add(ToastKindError, message, ErrorToastDuration)
}

// Tick drops expired toasts and reports whether any remain.
func (m *ToastManager) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.ExpiredAt(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Toasts returns a copy of the visible toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickInterval is how often expired toasts are swept.
const ToastTickInterval = 250 * time.Millisecond

// ToastTickMsg is sent periodically while toasts are visible.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next sweep.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast notification.
func RenderToast(t Toast, width int) string {
	maxWidth := 50
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	var fg, bg lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastKindError:
		fg, bg, icon = styles.ToastErrorFg, styles.ToastErrorBg, styles.StatusIndicators.Error
	case ToastKindWarning:
		fg, bg, icon = styles.ToastWarnFg, styles.ToastWarnBg, styles.StatusIndicators.Warning
	default:
		fg, bg, icon = styles.ToastInfoFg, styles.ToastInfoBg, styles.StatusIndicators.Info
	}

	body := util.Wrap(icon+" "+t.Message, maxWidth-2)

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1).
		Render(body)
}

// RenderToastStack renders toasts right-aligned, one per block, within width.
func RenderToastStack(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
