// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/jeranaias/chatterm/internal/logging"
)

// Bell is written when no sound command is configured.
const Bell = "\a"

// Player plays the received sound.
//
// With a command it runs the command in the background; a new Play or Stop
// kills the previous playback. Without a command it writes Bell to out.
type Player struct {
	mu      sync.Mutex
	command []string
	out     io.Writer
	logger  *slog.Logger

	cancel context.CancelFunc
	gen    uint64
}

// NewPlayer creates a player. command is split on whitespace; an empty
// command selects the terminal bell written to out.
func NewPlayer(command string, out io.Writer) *Player {
	return &Player{
		command: strings.Fields(command),
		out:     out,
		logger:  logging.Discard(),
	}
}

// WithLogger sets the logger used for playback errors.
func (p *Player) WithLogger(logger *slog.Logger) *Player {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Play starts playback and returns immediately.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.command) == 0 {
		if p.out != nil {
			_, _ = io.WriteString(p.out, Bell)
		}
		return
	}

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	if err := cmd.Start(); err != nil {
		cancel()
		p.logger.Debug("sound command failed to start", "command", p.command[0], "error", err)
		return
	}

	p.gen++
	gen := p.gen
	p.cancel = cancel

	go func() {
		err := cmd.Wait()
		cancel()

		p.mu.Lock()
		if p.gen == gen {
			p.cancel = nil
		}
		p.mu.Unlock()

		if err != nil && ctx.Err() == nil {
			p.logger.Debug("sound command failed", "command", p.command[0], "error", err)
		}
	}()
}

// Stop kills an in-progress playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
