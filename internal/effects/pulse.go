// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"sync"
	"time"
)

// PulseDuration is how long the status bar flashes.
const PulseDuration = 300 * time.Millisecond

// Pulse is a timed visual flash.
type Pulse struct {
	mu       sync.Mutex
	until    time.Time
	duration time.Duration
	now      func() time.Time
}

// NewPulse creates a pulse lasting PulseDuration.
func NewPulse() *Pulse {
	return &Pulse{duration: PulseDuration, now: time.Now}
}

// WithClock sets the time source, for tests.
func (p *Pulse) WithClock(now func() time.Time) *Pulse {
	p.now = now
	return p
}

// Trigger starts (or restarts) the flash.
func (p *Pulse) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.until = p.now().Add(p.duration)
}

// Stop ends the flash early.
func (p *Pulse) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.until = time.Time{}
}

// Active reports whether the flash is visible at t.
func (p *Pulse) Active(t time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.until.IsZero() && t.Before(p.until)
}

// Duration returns the flash length.
func (p *Pulse) Duration() time.Duration {
	return p.duration
}
