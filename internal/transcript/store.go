// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/chatterm/internal/model"
)

// Sentinel errors returned by Append.
var (
	ErrEmptyID     = errors.New("transcript: message has no id")
	ErrDuplicateID = errors.New("transcript: duplicate message id")
	ErrBadSender   = errors.New("transcript: unknown sender")
)

// =============================================================================
// OBSERVER
// =============================================================================

// Observer is notified after each successful append.
type Observer interface {
	OnAppend(msg model.Message, index int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(msg model.Message, index int)

// OnAppend calls f(msg, index).
func (f ObserverFunc) OnAppend(msg model.Message, index int) {
	f(msg, index)
}

type subscription struct {
	id       uint64
	observer Observer
}

// =============================================================================
// STORE
// =============================================================================

// Store is an ordered, append-only log of messages.
// It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []model.Message
	ids      map[string]struct{}

	subMu  sync.Mutex
	subs   []subscription
	nextID uint64
}

// New creates an empty transcript.
func New() *Store {
	return &Store{
		ids: make(map[string]struct{}),
	}
}

// Append adds msg to the end of the transcript and notifies observers.
// Observers run synchronously in subscription order, after the store lock
// has been released, so they may read the store.
func (s *Store) Append(msg model.Message) error {
	if msg.ID == "" {
		return ErrEmptyID
	}
	if !msg.Sender.Valid() {
		return fmt.Errorf("%w: %q", ErrBadSender, msg.Sender)
	}

	s.mu.Lock()
	if _, exists := s.ids[msg.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateID, msg.ID)
	}
	s.ids[msg.ID] = struct{}{}
	s.messages = append(s.messages, msg)
	index := len(s.messages) - 1
	s.mu.Unlock()

	for _, sub := range s.observers() {
		sub.OnAppend(msg, index)
	}
	return nil
}

// All returns a copy of the transcript in display order.
func (s *Store) All() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the newest message, if any.
func (s *Store) Last() (model.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return model.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// At returns the message at index i.
func (s *Store) At(i int) (model.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.messages) {
		return model.Message{}, false
	}
	return s.messages[i], true
}

// Subscribe registers an observer. The returned function removes it and is
// safe to call more than once.
func (s *Store) Subscribe(o Observer) (cancel func()) {
	if o == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, observer: o})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) observers() []Observer {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	out := make([]Observer, len(s.subs))
	for i, sub := range s.subs {
		out[i] = sub.observer
	}
	return out
}
