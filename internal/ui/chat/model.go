// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/effects"
	"github.com/jeranaias/chatterm/internal/logging"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/transcript"
	"github.com/jeranaias/chatterm/internal/turn"
	"github.com/jeranaias/chatterm/internal/ui/components"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// Screen identifies what the program is showing.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenChat
)

// String returns the screen name.
func (s Screen) String() string {
	if s == ScreenChat {
		return "chat"
	}
	return "welcome"
}

// Options configures a Model. Controller and Session are required.
type Options struct {
	Controller *turn.Controller
	Session    *session.Session
	Config     *config.Config

	// Effects is stopped when the terminal loses focus.
	Effects effects.Effects
	// Pulse drives the status bar flash; nil disables it.
	Pulse *effects.Pulse
	// Watcher delivers config reloads; nil disables live reload.
	Watcher *config.Watcher

	Theme         *styles.Theme
	Context       context.Context
	Logger        *slog.Logger
	Version       string
	ModelID       string
	KeyConfigured bool
}

// Model is the Bubble Tea model for the whole TUI.
type Model struct {
	screen Screen
	theme  *styles.Theme
	keys   KeyMap

	width  int
	height int

	// Domain
	ctrl     *turn.Controller
	sess     *session.Session
	settings *session.Settings
	fx       effects.Effects
	pulse    *effects.Pulse
	watcher  *config.Watcher
	inflight *cancelManager
	logger   *slog.Logger

	// Live settings
	showErrors   bool
	markdown     bool
	configAccent string

	// Components
	header  *components.Header
	chat    *components.ChatViewport
	input   *components.InputArea
	status  *components.StatusBar
	picker  *components.ColorPicker
	toasts  *components.ToastManager
	welcome components.Welcome
	spinner spinner.Model

	toastTicking bool
	unsubscribe  []func()
}

// New creates the TUI model and subscribes its transcript view to the
// controller's store and the session settings.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewThemeWithMode(cfg.UI.Theme)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	fx := opts.Effects
	if fx == nil {
		fx = effects.Nop{}
	}
	modelID := opts.ModelID
	if modelID == "" {
		modelID = model.ResolveModelID(cfg.Completion.Model)
	}

	keys := DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = styles.WaitingSpinner.Spinner()
	sp.Style = theme.Spinner

	m := Model{
		screen:       ScreenChat,
		theme:        theme,
		keys:         keys,
		width:        80,
		height:       24,
		ctrl:         opts.Controller,
		sess:         opts.Session,
		settings:     opts.Session.Settings,
		fx:           fx,
		pulse:        opts.Pulse,
		watcher:      opts.Watcher,
		inflight:     newCancelManager(opts.Context),
		logger:       logger,
		showErrors:   cfg.UI.ShowErrors,
		markdown:     cfg.UI.Markdown,
		configAccent: cfg.UI.AccentColor,
		header:       components.NewHeader(theme),
		chat:         components.NewChatViewport(theme),
		input:        components.NewInputArea(theme),
		status:       components.NewStatusBar(theme),
		picker:       components.NewColorPicker(theme),
		toasts:       components.NewToastManager(),
		welcome:      components.NewWelcome(theme),
		spinner:      sp,
	}
	if cfg.UI.Welcome {
		m.screen = ScreenWelcome
	}

	m.header.SessionID = m.sess.ShortID()
	m.status.SetModel(modelID)
	m.status.SetKeys(keys.StatusHints())
	m.welcome.SetVersion(opts.Version)
	m.welcome.SetModelName(modelID)
	m.welcome.SetKeyConfigured(opts.KeyConfigured)
	m.chat.SetAccent(m.settings.AccentColor())
	if cfg.UI.Timestamps {
		m.chat.SetShowTimestamps(true)
	}
	if m.markdown {
		m.chat.SetMarkdown(m.newMarkdown())
	}

	store := m.ctrl.Transcript()
	m.chat.SetMessages(store.All())
	m.header.Messages = store.Len()
	m.subscribe(store)

	return m
}

// subscribe attaches the transcript view. Callbacks run on whichever
// goroutine mutates the store or settings, which for the TUI is Update.
func (m *Model) subscribe(store *transcript.Store) {
	chat, header := m.chat, m.header
	cancelStore := store.Subscribe(transcript.ObserverFunc(func(msg model.Message, index int) {
		chat.AppendMessage(msg)
		header.Messages = index + 1
	}))
	cancelAccent := m.settings.Subscribe(func(_, accent string) {
		chat.SetAccent(accent)
	})
	m.unsubscribe = append(m.unsubscribe, cancelStore, cancelAccent)
}

func (m Model) newMarkdown() *components.Markdown {
	if m.theme.IsDark {
		return components.NewMarkdown("dark")
	}
	return components.NewMarkdown("light")
}

// Close detaches observers and releases an in-flight request.
func (m Model) Close() {
	m.inflight.done()
	for _, cancel := range m.unsubscribe {
		cancel()
	}
}

// Init starts the cursor blink and the config watcher listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.screen == ScreenChat {
		cmds = append(cmds, m.input.Focus())
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfigChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Screen returns the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Toasts returns the toast manager.
func (m Model) Toasts() *components.ToastManager {
	return m.toasts
}

// waitForConfigChange blocks on the watcher and turns the next reload into a
// message. Update re-arms it after each change.
func waitForConfigChange(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Change: change}
	}
}
