// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging sets up the structured application logger.
//
// The TUI owns the terminal, so logs are written as JSON lines to a file
// (by default ~/.chatterm/chatterm.log). Secrets never reach the logger:
// the credential type implements slog.LogValuer and logs only a fingerprint.
package logging
