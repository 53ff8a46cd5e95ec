// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatterm/internal/completion"
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/credential"
	"github.com/jeranaias/chatterm/internal/effects"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/transcript"
	"github.com/jeranaias/chatterm/internal/turn"
	"github.com/jeranaias/chatterm/internal/ui/components"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type harness struct {
	model Model
	ctrl  *turn.Controller
	store *transcript.Store
	fx    *effects.Recorder
	sess  *session.Session
}

func newHarness(t *testing.T, c completion.Completer, tweak func(*config.Config, *Options)) *harness {
	t.Helper()

	store := transcript.New()
	fx := &effects.Recorder{}
	ctrl := turn.New(store, c).WithEffects(fx)
	sess := session.New("")

	cfg := config.Default()
	cfg.UI.Welcome = false
	cfg.UI.Markdown = false

	opts := Options{
		Controller: ctrl,
		Session:    sess,
		Config:     cfg,
		Effects:    fx,
		Theme:      styles.NewThemeWithMode(styles.ModeDark),
		Version:    "test",
	}
	if tweak != nil {
		tweak(cfg, &opts)
	}

	h := &harness{model: New(opts), ctrl: ctrl, store: store, fx: fx, sess: sess}
	t.Cleanup(h.model.Close)
	_ = h.model.Init() // focuses the input; the blink command is not run
	h.send(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok, "Update must return chat.Model")
	h.model = m
	return cmd
}

func (h *harness) typeText(t *testing.T, text string) {
	t.Helper()
	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (h *harness) enter(t *testing.T) tea.Cmd {
	t.Helper()
	return h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
}

// complete runs the pending completion and feeds the result to Update.
func (h *harness) complete(t *testing.T) tea.Cmd {
	t.Helper()
	pending, ok := h.ctrl.Pending()
	require.True(t, ok, "expected a pending turn")
	return h.send(t, TurnCompleteMsg{Outcome: h.ctrl.Await(context.Background(), pending)})
}

func reply(text string, err error) completion.Completer {
	return completion.CompleterFunc(func(context.Context, string, int) (string, error) {
		return text, err
	})
}

func serverClient(t *testing.T, status int, body string) completion.Completer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return completion.New(credential.New("sk-test")).WithBaseURL(server.URL + "/v1")
}

func contents(store *transcript.Store) []string {
	var out []string
	for _, m := range store.All() {
		out = append(out, string(m.Sender)+":"+m.Content)
	}
	return out
}

// collect runs cmd and the members of a batch, returning their messages.
// Only use it on commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func toastMessages(m Model) []string {
	var out []string
	for _, t := range m.Toasts().Toasts() {
		out = append(out, t.Message)
	}
	return out
}

// =============================================================================
// TURN FLOW
// =============================================================================

func TestSubmitAndReply(t *testing.T) {
	h := newHarness(t, serverClient(t, http.StatusOK, `{"choices":[{"text":"4"}]}`), nil)

	h.typeText(t, "2+2?")
	cmd := h.enter(t)
	require.NotNil(t, cmd)

	assert.Equal(t, []string{"user:2+2?"}, contents(h.store))
	assert.Equal(t, "", h.model.input.Value(), "input is cleared on submit")
	assert.Equal(t, components.StatusWaiting, h.model.status.Status)
	assert.Equal(t, 1, h.model.chat.Messages())
	assert.True(t, h.model.inflight.active())

	var done TurnCompleteMsg
	for _, msg := range collect(cmd) {
		if m, ok := msg.(TurnCompleteMsg); ok {
			done = m
		}
	}
	require.NotNil(t, done.Outcome.Turn, "submit command must produce TurnCompleteMsg")
	h.send(t, done)

	assert.Equal(t, []string{"user:2+2?", "assistant:4"}, contents(h.store))
	assert.Equal(t, 2, h.model.chat.Messages())
	assert.Equal(t, 2, h.model.header.Messages)
	assert.Equal(t, components.StatusIdle, h.model.status.Status)
	assert.Equal(t, turn.StateIdle, h.ctrl.State())
	assert.False(t, h.model.inflight.active())

	sounds, pulses, _, _ := h.fx.Counts()
	assert.Equal(t, 1, sounds)
	assert.Equal(t, 1, pulses)
}

func TestWhitespaceInputIgnored(t *testing.T) {
	h := newHarness(t, reply("never", nil), nil)

	h.typeText(t, "   ")
	cmd := h.enter(t)

	assert.Nil(t, cmd)
	assert.Equal(t, 0, h.store.Len())
	assert.Equal(t, turn.StateIdle, h.ctrl.State())
	assert.Empty(t, toastMessages(h.model))
}

func TestFailedTurnShowsToast(t *testing.T) {
	h := newHarness(t, serverClient(t, http.StatusInternalServerError,
		`{"error":{"message":"boom","type":"server_error"}}`), nil)

	h.typeText(t, "ping")
	h.enter(t)
	h.complete(t)

	assert.Equal(t, []string{"user:ping"}, contents(h.store))
	assert.Equal(t, turn.StateIdle, h.ctrl.State())
	assert.Contains(t, toastMessages(h.model), completion.KindService.Describe())

	sounds, pulses, _, _ := h.fx.Counts()
	assert.Zero(t, sounds)
	assert.Zero(t, pulses)
	assert.NotContains(t, h.model.View(), "ChatGPT model", "a failed turn adds no reply bubble")
}

func TestFailedTurnQuietWhenErrorsHidden(t *testing.T) {
	h := newHarness(t, reply("", completion.ErrNotConfigured), func(cfg *config.Config, _ *Options) {
		cfg.UI.ShowErrors = false
	})

	h.typeText(t, "ping")
	h.enter(t)
	h.complete(t)

	assert.Equal(t, 1, h.store.Len())
	assert.Empty(t, toastMessages(h.model))
}

func TestSubmitWhileWaiting(t *testing.T) {
	h := newHarness(t, reply("ok", nil), nil)

	h.typeText(t, "first")
	h.enter(t)
	h.typeText(t, "second")
	cmd := h.enter(t)

	assert.Equal(t, []string{"user:first"}, contents(h.store))
	assert.Equal(t, "second", h.model.input.Value(), "rejected input is kept")
	assert.Contains(t, toastMessages(h.model), BusyNotice)
	assert.NotNil(t, cmd, "first toast starts the sweep tick")

	h.complete(t)
	assert.Equal(t, []string{"user:first", "assistant:ok"}, contents(h.store))
}

func TestStaleCompletionIgnored(t *testing.T) {
	h := newHarness(t, reply("ok", nil), nil)

	h.typeText(t, "hello")
	h.enter(t)
	h.complete(t)

	stale := TurnCompleteMsg{Outcome: turn.Outcome{Turn: &turn.Turn{}, Text: "late"}}
	h.send(t, stale)
	assert.Equal(t, 2, h.store.Len())
}

func TestTranscriptPrefixPreserved(t *testing.T) {
	h := newHarness(t, reply("pong", nil), nil)

	var snapshots [][]model.Message
	for _, text := range []string{"a", "b", "c"} {
		h.typeText(t, text)
		h.enter(t)
		snapshots = append(snapshots, h.store.All())
		h.complete(t)
		snapshots = append(snapshots, h.store.All())
	}

	for i := 1; i < len(snapshots); i++ {
		prev, cur := snapshots[i-1], snapshots[i]
		require.GreaterOrEqual(t, len(cur), len(prev))
		assert.Equal(t, prev, cur[:len(prev)])
	}
}

// =============================================================================
// SCREENS AND LAYOUT
// =============================================================================

func TestWelcomeScreen(t *testing.T) {
	h := newHarness(t, reply("", nil), func(cfg *config.Config, _ *Options) {
		cfg.UI.Welcome = true
	})

	assert.Equal(t, ScreenWelcome, h.model.Screen())
	assert.Contains(t, h.model.View(), components.StartChatLabel)

	h.typeText(t, "x")
	assert.Equal(t, ScreenWelcome, h.model.Screen(), "only the start key leaves the welcome screen")

	h.enter(t)
	assert.Equal(t, ScreenChat, h.model.Screen())
	assert.Equal(t, "chat", h.model.Screen().String())
	assert.Equal(t, 0, h.store.Len(), "start does not submit")
}

func TestChatViewLayout(t *testing.T) {
	h := newHarness(t, reply("hi there", nil), nil)

	view := h.model.View()
	assert.Contains(t, view, "Chat")
	assert.Contains(t, view, components.Placeholder)
	assert.Contains(t, view, components.SendLabel)
	assert.LessOrEqual(t, lipgloss.Height(view), 24)

	h.typeText(t, "hello")
	h.enter(t)
	h.complete(t)

	view = h.model.View()
	assert.Contains(t, view, "Me")
	assert.Contains(t, view, "ChatGPT model")
	assert.Contains(t, view, "hi there")
	assert.LessOrEqual(t, lipgloss.Height(view), 24)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)

	cmd := h.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestColorPickerChangesAccentOnly(t *testing.T) {
	h := newHarness(t, reply("4", nil), nil)
	h.typeText(t, "2+2?")
	h.enter(t)
	h.complete(t)
	before := h.store.All()

	h.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, h.model.picker.IsVisible())
	assert.Contains(t, h.model.View(), "Accent color")

	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("#ff453a")})
	cmd := h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	chosen, ok := cmd().(components.ColorChosenMsg)
	require.True(t, ok)

	h.send(t, chosen)
	assert.Equal(t, "#FF453A", h.sess.Settings.AccentColor())
	assert.Equal(t, "#FF453A", h.model.chat.Accent())
	assert.Equal(t, before, h.store.All(), "accent changes never touch the transcript")
	assert.Equal(t, 2, h.store.Len())
}

func TestEnterInPickerDoesNotSubmit(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)
	h.typeText(t, "draft")

	h.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	h.enter(t)

	assert.Equal(t, 0, h.store.Len())
	assert.Equal(t, "draft", h.model.input.Value())
	assert.False(t, h.model.picker.IsVisible())
}

func TestConfigReloadUpdatesAccent(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)

	cfg := config.Default()
	cfg.UI.AccentColor = "green"
	cfg.UI.ShowErrors = false
	h.send(t, ConfigChangedMsg{Change: config.Change{Path: "config.toml", Config: cfg}})

	assert.Equal(t, "#30D158", h.sess.Settings.AccentColor())
	assert.False(t, h.model.showErrors)

	// an unrelated reload keeps a picker choice
	require.NoError(t, h.sess.Settings.SetAccentColor("#FF453A"))
	h.send(t, ConfigChangedMsg{Change: config.Change{Path: "config.toml", Config: cfg}})
	assert.Equal(t, "#FF453A", h.sess.Settings.AccentColor())
}

func TestConfigReloadError(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)

	h.send(t, ConfigChangedMsg{Change: config.Change{Path: "config.toml", Err: errors.New("bad toml")}})

	assert.Contains(t, toastMessages(h.model), "config reload failed")
	assert.Equal(t, session.DefaultAccentColor, h.sess.Settings.AccentColor())
}

func TestConfigReloadTogglesMarkdown(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)

	cfg := config.Default()
	cfg.UI.Markdown = true
	h.send(t, ConfigChangedMsg{Change: config.Change{Config: cfg}})
	assert.True(t, h.model.markdown)
}

func TestConfigReloadTogglesTimestamps(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)
	require.NoError(t, h.store.Append(model.NewUserMessage("hello")))
	stamp := h.store.All()[0].CreatedAt.Format("15:04")
	assert.NotContains(t, h.model.View(), stamp)

	cfg := config.Default()
	cfg.UI.Timestamps = true
	h.send(t, ConfigChangedMsg{Change: config.Change{Config: cfg}})
	assert.Contains(t, h.model.View(), stamp)

	h.send(t, ConfigChangedMsg{Change: config.Change{Config: config.Default()}})
	assert.NotContains(t, h.model.View(), stamp)
}

// =============================================================================
// FOCUS AND FEEDBACK
// =============================================================================

func TestBlurStopsEffects(t *testing.T) {
	h := newHarness(t, reply("", nil), nil)

	h.send(t, tea.BlurMsg{})

	_, _, soundStops, hapticStops := h.fx.Counts()
	assert.Equal(t, 1, soundStops)
	assert.Equal(t, 1, hapticStops)
	assert.Equal(t, turn.StateIdle, h.ctrl.State())
}

func TestPulseFlashesStatusBar(t *testing.T) {
	pulse := effects.NewPulse()
	set := effects.NewSet(nil, pulse)

	store := transcript.New()
	ctrl := turn.New(store, reply("hi", nil)).WithEffects(set)
	cfg := config.Default()
	cfg.UI.Welcome = false
	cfg.UI.Markdown = false
	m := New(Options{Controller: ctrl, Session: session.New(""), Config: cfg, Effects: set, Pulse: pulse})
	t.Cleanup(m.Close)
	_ = m.Init()
	h := &harness{model: m, ctrl: ctrl, store: store}

	h.typeText(t, "hello")
	h.enter(t)
	cmd := h.complete(t)

	assert.NotNil(t, cmd, "pulse end is scheduled")
	assert.True(t, h.model.status.Pulse)

	h.send(t, tea.BlurMsg{})
	assert.False(t, h.model.status.Pulse)
	assert.False(t, pulse.Active(time.Now()))
}

func TestOverlayBottom(t *testing.T) {
	assert.Equal(t, "a\nb\nX\nY", overlayBottom("a\nb\nc\nd", "X\nY"))
	assert.Equal(t, "Z", overlayBottom("a", "Y\nZ"))
	assert.True(t, strings.HasPrefix(overlayBottom("a\nb", "X"), "a\n"))
}
