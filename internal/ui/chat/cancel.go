// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// cancelManager owns the context of the in-flight completion call. Requests
// are never cancelled by the user; the context only ends when the program
// quits so the worker goroutine does not outlive it.
// Held by pointer so Bubble Tea's model copies share one mutex.
type cancelManager struct {
	mu     sync.Mutex
	parent context.Context
	cancel context.CancelFunc
}

func newCancelManager(parent context.Context) *cancelManager {
	if parent == nil {
		parent = context.Background()
	}
	return &cancelManager{parent: parent}
}

// begin returns a context for a new request.
func (cm *cancelManager) begin() context.Context {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancel != nil {
		cm.cancel()
	}
	ctx, cancel := context.WithCancel(cm.parent)
	cm.cancel = cancel
	return ctx
}

// done releases the context of a finished request.
func (cm *cancelManager) done() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancel != nil {
		cm.cancel()
		cm.cancel = nil
	}
}

// active reports whether a request context is outstanding.
func (cm *cancelManager) active() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.cancel != nil
}
