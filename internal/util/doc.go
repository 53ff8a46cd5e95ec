// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across chatterm.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunesNoEllipsis, TruncateWidth: UTF-8 and display-width safe truncation
//   - Wrap: Word wrapping by display width (go-runewidth)
//
// File Operations:
//   - AtomicWriteFileWithDir: Crash-safe file writing with fsync
//
// # Usage
//
//	// Wrap a message to fit a bubble
//	body := util.Wrap(msg.Content, 40)
//
//	// Write the config file atomically
//	err := util.AtomicWriteFileWithDir(path, data, 0600, 0700)
package util
