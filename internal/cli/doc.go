// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the chatterm command line.
//
// The root command runs the full-screen chat TUI. The other commands share
// the same wiring (config, logging, credential, completion client, turn
// controller) through App.
//
// # Commands
//
//   - chatterm: full-screen chat (Bubble Tea)
//   - chatterm ask <prompt...>: one turn, reply printed to stdout
//   - chatterm line: plain line-mode REPL (liner)
//   - chatterm config init|show|get|set|path|keys: configuration
//   - chatterm version: build information
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
package cli
