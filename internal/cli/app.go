// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jeranaias/chatterm/internal/completion"
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/credential"
	"github.com/jeranaias/chatterm/internal/effects"
	"github.com/jeranaias/chatterm/internal/logging"
	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/transcript"
	"github.com/jeranaias/chatterm/internal/turn"
)

// App holds the components shared by the TUI, line and ask commands.
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Credential credential.Credential
	Client     *completion.Client
	Store      *transcript.Store
	Controller *turn.Controller
	Session    *session.Session
	Effects    *effects.Set
	Pulse      *effects.Pulse

	closeLog func() error
}

// NewApp loads the configuration, applies flags and wires the components.
// soundOut receives the terminal bell when no sound command is set.
func NewApp(flags *Flags, soundOut io.Writer) (*App, error) {
	cfg, path, err := loadConfig(flags.ConfigPath)
	if err != nil {
		return nil, configError(err)
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, configError(fmt.Errorf("invalid config: %w", err))
	}

	logger, closeLog, err := logging.OpenFile(cfg.LogPath(), logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		// The log file is optional; the chat still works without it.
		logger, closeLog = logging.Discard(), func() error { return nil }
	}

	if err := credential.LoadDotEnv(cfg.Completion.EnvFile, ".env"); err != nil {
		logger.Warn("env file not loaded", "error", err)
	}
	cred := credential.FromEnv()

	client := completion.New(cred).
		WithModel(cfg.Completion.Model).
		WithBaseURL(cfg.Completion.BaseURL).
		WithLogger(logger)

	app := newApp(cfg, client, logger, soundOut)
	app.ConfigPath = path
	app.Credential = cred
	app.closeLog = closeLog

	logger.Info("session started",
		"session", app.Session.ID,
		"model", client.Model(),
		"base_url", client.BaseURL(),
		"credential", cred,
		"config", path)
	return app, nil
}

// newApp wires the components around a completer.
func newApp(cfg *config.Config, c completion.Completer, logger *slog.Logger, soundOut io.Writer) *App {
	var player *effects.Player
	if cfg.Effects.Sound {
		player = effects.NewPlayer(cfg.Effects.SoundCommand, soundOut).WithLogger(logger)
	}
	var pulse *effects.Pulse
	if cfg.Effects.Haptic {
		pulse = effects.NewPulse()
	}
	fx := effects.NewSet(player, pulse)

	store := transcript.New()
	app := &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Controller: turn.New(store, c).WithEffects(fx).WithLogger(logger),
		Session:    session.New(cfg.UI.AccentColor),
		Effects:    fx,
		Pulse:      pulse,
		closeLog:   func() error { return nil },
	}
	if client, ok := c.(*completion.Client); ok {
		app.Client = client
	}
	return app
}

// ModelID returns the model requests are sent to.
func (a *App) ModelID() string {
	if a.Client != nil {
		return a.Client.Model()
	}
	return a.Config.Completion.Model
}

// Close stops effects and closes the log file.
func (a *App) Close() error {
	a.Effects.StopSound()
	a.Effects.StopHaptic()
	a.Logger.Info("session ended",
		"session", a.Session.ID,
		"messages", a.Store.Len(),
		"duration", session.FormatDuration(a.Session.Duration()))
	return a.closeLog()
}

// loadConfig loads the config at path, or searches the default locations
// when path is empty. The returned path is "" when no file exists.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		return cfg, path, err
	}
	cfg, err := config.Load()
	return cfg, config.FindConfigFile(), err
}
