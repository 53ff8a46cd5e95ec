// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turn orchestrates one user turn: a submitted prompt and the
// assistant reply it produces.
//
// The controller is a two-state machine, Idle and AwaitingResponse. A turn
// is split into three steps so that a UI event loop never blocks:
//
//	t, err := ctrl.Submit(input)      // owner goroutine: appends the user message
//	out := ctrl.Await(ctx, t)         // any goroutine: the completion request
//	err = ctrl.Resolve(out)           // owner goroutine: appends the reply
//
// Synchronous front-ends use Send, which runs all three.
//
// # Rules
//
//   - Whitespace-only input is rejected with ErrEmptyInput and changes nothing
//   - The user message holds the text exactly as typed and is appended
//     before the request is issued
//   - While a turn is pending, Submit returns ErrTurnInProgress
//   - On success the reply is appended directly after its user message and
//     the received feedback effects fire
//   - On failure nothing is appended and no effects fire; the failure is
//     logged and passed to the failure handler, if any
package turn
