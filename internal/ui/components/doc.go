// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the chatterm TUI.

Each component is a small struct with setters and a View method; the ones
that take input also have a Bubble Tea style Update.

# Display Components

MessageBubble (bubble.go) - User and assistant bubbles. The user bubble
background is the session accent color, read at render time.
ChatViewport (viewport.go) - Scrollable transcript with auto-scroll.
Markdown (markdown.go) - Cached glamour renderers for assistant replies.
Header (header.go) - Screen title and session details.
StatusBar (statusbar.go) - Model, turn state, key hints, haptic flash.
Welcome (welcome.go) - Start screen with the "Start Chat" action.

# Input Components

InputArea (input.go) - Single-line prompt with a Send button.
ColorPicker (colorpicker.go) - Accent presets plus a hex input.

# Feedback

ToastManager (toast.go) - Auto-dismissing notices. Toasts never enter the
transcript.
*/
package components
