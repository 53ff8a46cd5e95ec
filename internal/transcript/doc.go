// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript provides the append-only message log of a chat session.
//
// The Store is the only mutable conversation state in the application. It is
// created empty at session start and discarded when the session ends.
//
// # Invariants
//
//   - Append is the only mutator; messages are never reordered or removed
//   - Insertion order is chronological order is display order
//   - No two messages share an ID
//   - A snapshot taken earlier is always a prefix of a later snapshot
//
// # Usage
//
//	store := transcript.New()
//	cancel := store.Subscribe(transcript.ObserverFunc(func(msg model.Message, idx int) {
//	    view.Refresh()
//	}))
//	defer cancel()
//
//	if err := store.Append(model.NewUserMessage("hello")); err != nil {
//	    // duplicate or empty ID
//	}
package transcript
