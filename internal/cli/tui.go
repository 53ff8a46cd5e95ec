// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/ui/chat"
)

// runTUI runs the full-screen chat until the user quits.
func runTUI(cmd *cobra.Command, flags *Flags) error {
	if !IsTTY() || !IsStdoutTTY() {
		return usageError("the chat screen needs a terminal; use 'chatterm ask' or 'chatterm line' when piping")
	}

	// The bell goes to stderr; Bubble Tea owns stdout.
	app, err := NewApp(flags, os.Stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	watcher := startWatcher(app)
	if watcher != nil {
		defer watcher.Close()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := chat.New(chat.Options{
		Controller:    app.Controller,
		Session:       app.Session,
		Config:        app.Config,
		Effects:       app.Effects,
		Pulse:         app.Pulse,
		Watcher:       watcher,
		Context:       ctx,
		Logger:        app.Logger,
		Version:       Version,
		ModelID:       app.ModelID(),
		KeyConfigured: app.Credential.IsSet(),
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(chat.Model); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("chat screen: %w", err)
	}
	return nil
}

// startWatcher watches the loaded config file. Live reload is best effort.
func startWatcher(app *App) *config.Watcher {
	if app.ConfigPath == "" {
		return nil
	}
	w, err := config.NewWatcher(app.ConfigPath)
	if err != nil {
		app.Logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	w.WithLogger(app.Logger)
	if err := w.Watch(); err != nil {
		app.Logger.Warn("config watcher unavailable", "error", err)
		_ = w.Close()
		return nil
	}
	return w
}
