// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package turn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/chatterm/internal/completion"
	"github.com/jeranaias/chatterm/internal/effects"
	"github.com/jeranaias/chatterm/internal/logging"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/transcript"
)

// Errors returned by the controller.
var (
	ErrEmptyInput     = errors.New("turn: input is empty")
	ErrTurnInProgress = errors.New("turn: waiting for a reply")
	ErrUnknownTurn    = errors.New("turn: not the pending turn")
)

// =============================================================================
// STATE
// =============================================================================

// State is the controller state.
type State int

const (
	// StateIdle accepts a new submission.
	StateIdle State = iota

	// StateAwaitingResponse has one request in flight.
	StateAwaitingResponse
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingResponse:
		return "AwaitingResponse"
	default:
		return "Unknown"
	}
}

// =============================================================================
// TURN AND OUTCOME
// =============================================================================

// Turn is a submitted prompt waiting for its reply.
type Turn struct {
	// User is the message appended on submit.
	User model.Message

	// Prompt is the text sent to the completion service.
	Prompt string

	// Started is when the turn was submitted.
	Started time.Time
}

// ID returns the ID of the turn's user message.
func (t *Turn) ID() string {
	return t.User.ID
}

// Outcome is the result of awaiting a turn.
type Outcome struct {
	Turn     *Turn
	Text     string
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the completion returned without error.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Kind classifies a failed outcome.
func (o Outcome) Kind() completion.Kind {
	return completion.Classify(o.Err)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller runs turns against a transcript.
type Controller struct {
	store     *transcript.Store
	completer completion.Completer
	effects   effects.Effects
	logger    *slog.Logger
	maxTokens int
	onFailure func(Outcome)

	mu        sync.Mutex
	state     State
	pending   *Turn
	resolving bool
}

// New creates a controller appending to store and asking completer.
func New(store *transcript.Store, completer completion.Completer) *Controller {
	return &Controller{
		store:     store,
		completer: completer,
		effects:   effects.Nop{},
		logger:    logging.Discard(),
		maxTokens: completion.MaxTokens,
	}
}

// WithEffects sets the feedback effects fired on a reply.
func (c *Controller) WithEffects(fx effects.Effects) *Controller {
	if fx != nil {
		c.effects = fx
	}
	return c
}

// WithLogger sets the logger.
func (c *Controller) WithLogger(logger *slog.Logger) *Controller {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// OnFailure sets a handler called after a failed turn returns to Idle.
func (c *Controller) OnFailure(fn func(Outcome)) *Controller {
	c.onFailure = fn
	return c
}

// Transcript returns the store the controller appends to.
func (c *Controller) Transcript() *transcript.Store {
	return c.store
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a reply is pending.
func (c *Controller) Busy() bool {
	return c.State() == StateAwaitingResponse
}

// Pending returns the turn waiting for a reply, if any.
func (c *Controller) Pending() (*Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending, c.pending != nil
}

// Submit starts a turn with text.
//
// On success the user message is already in the transcript when Submit
// returns and the controller is AwaitingResponse.
func (c *Controller) Submit(text string) (*Turn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		c.logger.Debug("submit rejected", "reason", "busy")
		return nil, ErrTurnInProgress
	}
	t := &Turn{
		User:    model.NewUserMessage(text),
		Prompt:  text,
		Started: time.Now(),
	}
	c.state = StateAwaitingResponse
	c.pending = t
	c.mu.Unlock()

	if err := c.store.Append(t.User); err != nil {
		c.reset()
		return nil, fmt.Errorf("append user message: %w", err)
	}

	c.logger.Debug("turn submitted", "turn", t.ID(), "prompt_len", len(text))
	return t, nil
}

// Await performs the completion request for t. It does not touch controller
// or transcript state and may run on any goroutine.
func (c *Controller) Await(ctx context.Context, t *Turn) Outcome {
	start := time.Now()
	text, err := c.completer.Complete(ctx, t.Prompt, c.maxTokens)
	return Outcome{
		Turn:     t,
		Text:     text,
		Err:      err,
		Duration: time.Since(start),
	}
}

// Resolve finishes the pending turn with out and returns to Idle.
func (c *Controller) Resolve(out Outcome) error {
	_, err := c.resolve(out)
	return err
}

// resolve is Resolve returning the appended reply.
func (c *Controller) resolve(out Outcome) (model.Message, error) {
	c.mu.Lock()
	if c.pending == nil || out.Turn != c.pending || c.resolving {
		c.mu.Unlock()
		return model.Message{}, ErrUnknownTurn
	}
	c.resolving = true
	c.mu.Unlock()

	if !out.Succeeded() {
		kind := out.Kind()
		c.logger.Warn("turn failed",
			"turn", out.Turn.ID(),
			"kind", kind.String(),
			"duration", out.Duration,
			"error", out.Err.Error())
		c.reset()
		if c.onFailure != nil {
			c.onFailure(out)
		}
		return model.Message{}, nil
	}

	reply := model.NewAssistantMessage(out.Text)
	err := c.store.Append(reply)
	if err == nil {
		c.effects.PlayReceivedSound()
		c.effects.TriggerHapticPulse()
		c.logger.Info("turn completed",
			"turn", out.Turn.ID(),
			"reply", reply.ID,
			"duration", out.Duration,
			"output_len", len(out.Text))
	}
	c.reset()

	if err != nil {
		return model.Message{}, fmt.Errorf("append reply: %w", err)
	}
	return reply, nil
}

// Send runs a whole turn synchronously and returns the reply message.
// A completion failure is returned as the error, after the controller has
// returned to Idle.
func (c *Controller) Send(ctx context.Context, text string) (model.Message, error) {
	t, err := c.Submit(text)
	if err != nil {
		return model.Message{}, err
	}

	out := c.Await(ctx, t)
	reply, err := c.resolve(out)
	if err != nil {
		return model.Message{}, err
	}
	if out.Err != nil {
		return model.Message{}, out.Err
	}
	return reply, nil
}

func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.pending = nil
	c.resolving = false
}
