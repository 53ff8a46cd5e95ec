// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/turn"
	"github.com/jeranaias/chatterm/internal/ui/components"
)

// BusyNotice is shown when a submit is rejected because a reply is pending.
const BusyNotice = "waiting for reply"

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.screen == ScreenChat && !m.picker.IsVisible() {
			_, cmd := m.chat.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.BlurMsg:
		m.fx.StopSound()
		m.fx.StopHaptic()
		m.status.SetPulse(false)
		m.logger.Debug("focus lost, feedback stopped")
		return m, nil

	case tea.FocusMsg:
		return m, nil

	case TurnCompleteMsg:
		return m.handleTurnComplete(msg)

	case components.ColorChosenMsg:
		return m.applyAccent(msg.Value, "accent set to "+msg.Value)

	case components.ColorPickerClosedMsg:
		return m, m.input.Focus()

	case ConfigChangedMsg:
		return m.handleConfigChange(msg)

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			m.input.SetBusy("")
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.input.SetBusy(m.spinner.View())
		return m, cmd

	case components.ToastTickMsg:
		if m.toasts.Tick() {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil

	case PulseEndMsg:
		m.status.SetPulse(m.pulseActive())
		return m, nil
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// header 1, input box 3, status bar 1
	const reserved = 5
	m.chat.SetSize(max(m.width, 1), max(m.height-reserved, 1))
	m.header.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.picker.SetSize(m.width, max(m.height-reserved, 1))
	m.welcome.SetSize(m.width, m.height)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Close()
		return m, tea.Quit
	}

	if m.screen == ScreenWelcome {
		if key.Matches(msg, m.keys.Start) {
			m.screen = ScreenChat
			return m, m.input.Focus()
		}
		return m, nil
	}

	if m.picker.IsVisible() {
		_, cmd := m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Color):
		m.input.Blur()
		return m, m.picker.Show(m.settings.AccentColor())

	case key.Matches(msg, m.keys.Scroll()...):
		_, cmd := m.chat.Update(msg)
		return m, cmd
	}

	_, cmd := m.input.Update(msg)
	return m, cmd
}

// submit starts a turn with the input text. The completion call runs as a
// command and reports back with TurnCompleteMsg.
func (m Model) submit() (tea.Model, tea.Cmd) {
	t, err := m.ctrl.Submit(m.input.Value())
	switch {
	case errors.Is(err, turn.ErrEmptyInput):
		return m, nil
	case errors.Is(err, turn.ErrTurnInProgress):
		cmd := m.addToast(components.ToastKindWarning, BusyNotice)
		return m, cmd
	case err != nil:
		m.logger.Error("submit failed", "error", err)
		cmd := m.addToast(components.ToastKindError, err.Error())
		return m, cmd
	}

	m.input.Reset()
	m.status.SetStatus(components.StatusWaiting)
	m.input.SetBusy(m.spinner.View())
	return m, tea.Batch(m.awaitCmd(t), m.spinner.Tick)
}

func (m Model) awaitCmd(t *turn.Turn) tea.Cmd {
	ctx := m.inflight.begin()
	ctrl := m.ctrl
	return func() tea.Msg {
		return TurnCompleteMsg{Outcome: ctrl.Await(ctx, t)}
	}
}

func (m Model) handleTurnComplete(msg TurnCompleteMsg) (tea.Model, tea.Cmd) {
	m.inflight.done()

	if err := m.ctrl.Resolve(msg.Outcome); err != nil {
		m.logger.Warn("resolve failed", "error", err)
	}
	m.status.SetStatus(components.StatusIdle)
	m.input.SetBusy("")

	var cmds []tea.Cmd
	if !msg.Outcome.Succeeded() {
		if m.showErrors {
			cmds = append(cmds, m.addToast(components.ToastKindError, msg.Outcome.Kind().Describe()))
		}
		return m, tea.Batch(cmds...)
	}

	if m.pulseActive() {
		m.status.SetPulse(true)
		cmds = append(cmds, tea.Tick(m.pulse.Duration(), func(time.Time) tea.Msg {
			return PulseEndMsg{}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) pulseActive() bool {
	return m.pulse != nil && m.pulse.Active(time.Now())
}

// applyAccent stores a new accent. The settings subscriber re-renders the
// transcript; the transcript itself is untouched.
func (m Model) applyAccent(value, notice string) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.input.Focus()}
	if err := m.settings.SetAccentColor(value); err != nil {
		cmds = append(cmds, m.addToast(components.ToastKindError, err.Error()))
		return m, tea.Batch(cmds...)
	}
	if notice != "" {
		cmds = append(cmds, m.addToast(components.ToastKindInfo, notice))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleConfigChange(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForConfigChange(m.watcher)}

	change := msg.Change
	if change.Err != nil {
		cmds = append(cmds, m.addToast(components.ToastKindWarning, "config reload failed"))
		return m, tea.Batch(cmds...)
	}

	cfg := change.Config
	m.showErrors = cfg.UI.ShowErrors
	m.chat.SetShowTimestamps(cfg.UI.Timestamps)
	if cfg.UI.Markdown != m.markdown {
		m.markdown = cfg.UI.Markdown
		if m.markdown {
			m.chat.SetMarkdown(m.newMarkdown())
		} else {
			m.chat.SetMarkdown(nil)
		}
	}

	// Only a changed file value overrides the session; a picker choice
	// survives unrelated edits.
	if accent := cfg.UI.AccentColor; accent != m.configAccent {
		m.configAccent = accent
		if normalized, err := session.NormalizeColor(accent); err == nil {
			if err := m.settings.SetAccentColor(normalized); err == nil {
				cmds = append(cmds, m.addToast(components.ToastKindInfo, "accent reloaded: "+normalized))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// addToast shows a notice and starts the sweep tick if it is not running.
func (m *Model) addToast(kind components.ToastKind, text string) tea.Cmd {
	switch kind {
	case components.ToastKindError:
		m.toasts.AddError(text)
	case components.ToastKindWarning:
		m.toasts.AddWarning(text)
	default:
		m.toasts.AddInfo(text)
	}
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}
