// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-session presentation settings.
//
// The only mutable setting is the accent color used for the user's message
// bubbles. Settings are independent of the transcript: changing the color
// never alters a message, and renderers read the current color at render
// time so already-sent bubbles are recolored too. Nothing here is persisted;
// the value starts from the configured default and is discarded at exit.
//
// # Key Types
//
//   - Settings: Accent color with change notification
//   - Preset: A named color offered by the picker
//   - Session: Session identity and start time for the status bar
//
// # Usage
//
//	settings := session.NewSettings(cfg.UI.AccentColor)
//	cancel := settings.Subscribe(func(old, new string) {
//	    view.Refresh()
//	})
//	defer cancel()
//
//	if err := settings.SetAccentColor("#30D158"); err != nil {
//	    // ErrInvalidColor
//	}
package session
