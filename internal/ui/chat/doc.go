// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea program model for the chatterm TUI.

# Screens

The program opens on the welcome screen ("Start Chat") unless ui.welcome is
off, then shows the chat screen titled "Chat".

# Model (model.go)

Model wires the turn controller, transcript store, session settings and
feedback effects to the components. The transcript view subscribes to the
store and to the settings, so appends and accent changes re-render it.

# Update Loop (update.go)

All transcript mutation happens inside Update: Submit on Enter, and Resolve
when the completion command reports back with a TurnCompleteMsg. The
completion call itself runs as a tea.Cmd so the UI stays responsive. Losing
terminal focus stops sound and haptic feedback.

# View Rendering (view.go)

Header, transcript, toasts, input and status bar, top to bottom. The color
picker replaces the transcript while it is open.
*/
package chat
