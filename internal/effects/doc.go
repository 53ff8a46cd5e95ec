// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package effects provides the feedback played when a reply arrives.
//
// Effects are fire-and-forget: they never touch the transcript and report
// nothing back. The turn controller calls PlayReceivedSound and
// TriggerHapticPulse after an assistant message is appended; the
// presentation layer calls StopSound and StopHaptic when the terminal loses
// focus.
//
// # Implementations
//
//   - Nop: does nothing
//   - Player: runs a sound command, or rings the terminal bell
//   - Pulse: a short visual flash of the status bar, the terminal stand-in
//     for a haptic tap
//   - Set: combines a Player and a Pulse behind on/off switches
//   - Recorder: counts calls, for tests
package effects
