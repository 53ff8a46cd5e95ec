// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/model"
)

// Version information (set from main at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// SHARED FLAGS
// =============================================================================

// Flags holds the options shared by every command.
type Flags struct {
	ConfigPath string
	Model      string
	BaseURL    string
	Accent     string
	NoSound    bool
	Debug      bool
	LogFile    string
}

// FlagSet returns a pflag set bound to f.
func (f *Flags) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("chatterm", pflag.ContinueOnError)
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "config file (default ~/.chatterm/config.toml)")
	fs.StringVarP(&f.Model, "model", "m", "",
		"completion model ID or short name ("+strings.Join(model.ModelShortNames(), ", ")+")")
	fs.StringVar(&f.BaseURL, "base-url", "", "completion API base URL")
	fs.StringVar(&f.Accent, "accent", "", "accent color: preset name, #RRGGBB or ANSI 0-255")
	fs.BoolVar(&f.NoSound, "no-sound", false, "disable the reply sound")
	fs.BoolVar(&f.Debug, "debug", false, "log at debug level")
	fs.StringVar(&f.LogFile, "log-file", "", "log file (default ~/.chatterm/chatterm.log)")
	return fs
}

// Apply layers the flag values over cfg. Unset flags leave cfg untouched.
func (f *Flags) Apply(cfg *config.Config) {
	if f.Model != "" {
		cfg.Completion.Model = f.Model
	}
	if f.BaseURL != "" {
		cfg.Completion.BaseURL = f.BaseURL
	}
	if f.Accent != "" {
		cfg.UI.AccentColor = f.Accent
	}
	if f.NoSound {
		cfg.Effects.Sound = false
	}
	if f.Debug {
		cfg.Log.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &Flags{}

	root := &cobra.Command{
		Use:   "chatterm",
		Short: "Chat with an OpenAI completion model in the terminal",
		Long: `chatterm is a terminal chat front-end for the OpenAI completions API.

Type a message, press Enter, and the model's reply appears below it.
The API key is read from the OpenAI_API_KEY environment variable (or a
.env file); it is never stored in the config file.

Quick Start:
  export OpenAI_API_KEY=sk-...
  chatterm                         # full-screen chat
  chatterm ask "What is 2+2?"      # one question, reply on stdout
  chatterm line                    # plain line-mode chat
  chatterm config init             # write ~/.chatterm/config.toml`,
		Version:       versionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}

	root.PersistentFlags().AddFlagSet(flags.FlagSet())
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.AddCommand(
		newAskCommand(flags),
		newLineCommand(flags),
		newConfigCommand(flags),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("Error:"), err)
		return ExitCode(err)
	}
	return ExitSuccess
}
