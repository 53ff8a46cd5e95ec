// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatterm.
//
// Supports TOML, JSON and YAML configuration formats, with sensible defaults,
// environment variable overrides, validation, and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - CompletionConfig: Model and endpoint of the completion service
//   - UIConfig: Accent color, theme and display switches
//   - EffectsConfig: Sound and haptic feedback switches
//   - Watcher: fsnotify-based reloader for the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATTERM_*)
//   - ~/.chatterm/config.toml
//   - ~/.chatterm/config.json
//   - ~/.chatterm/config.yaml
//   - Built-in defaults
//
// The API key is never stored in the configuration; it is read from the
// OpenAI_API_KEY environment variable.
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for changes:
//
//	w, _ := config.NewWatcher(path)
//	_ = w.Watch()
//	for change := range w.Changes() {
//	    apply(change.Config)
//	}
package config
