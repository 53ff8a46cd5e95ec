// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatterm/internal/config"
)

func newConfigCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the configuration",
		Long: `Show or edit the configuration file.

The file is ~/.chatterm/config.toml unless --config is given
(CHATTERM_HOME moves the directory). config.json and config.yaml are
also read. Keys use dot notation, for example ui.accent_color.

Examples:
  chatterm config init
  chatterm config show
  chatterm config get ui.accent_color
  chatterm config set ui.accent_color teal
  chatterm config set effects.sound false`,
	}

	cmd.AddCommand(
		newConfigInitCommand(flags),
		newConfigShowCommand(flags),
		newConfigGetCommand(flags),
		newConfigSetCommand(flags),
		newConfigPathCommand(flags),
		newConfigKeysCommand(),
	)
	return cmd
}

// targetPath is the file the config commands read and write.
func targetPath(flags *Flags) (string, error) {
	if flags.ConfigPath != "" {
		return flags.ConfigPath, nil
	}
	if path := config.FindConfigFile(); path != "" {
		return path, nil
	}
	return config.ConfigPathTOML()
}

// readTarget reads the config file without env overrides. A missing file
// yields the defaults.
func readTarget(path string) (*config.Config, error) {
	cfg, err := config.ReadFile(path)
	if err == nil {
		return cfg, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, configError(err)
}

func newConfigInitCommand(flags *Flags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := flags.ConfigPath
			if path == "" {
				var err error
				if path, err = config.ConfigPathTOML(); err != nil {
					return configError(err)
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usageError(path + " already exists (use --force to overwrite)")
			}
			if err := config.SaveToPath(config.Default(), path); err != nil {
				return configError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", SuccessStyle.Render("[OK]"), path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the file, environment overrides and
flags are applied. The API key is never part of it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(flags.ConfigPath)
			if err != nil {
				return configError(err)
			}
			flags.Apply(cfg)

			out := cmd.OutOrStdout()
			if path == "" {
				path = "(defaults, no file)"
			}
			fmt.Fprintf(out, "# source: %s\n", path)
			fmt.Fprint(out, cfg.String())
			return nil
		},
	}
}

func newConfigGetCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(flags.ConfigPath)
			if err != nil {
				return configError(err)
			}
			flags.Apply(cfg)

			value, err := cfg.Get(args[0])
			if err != nil {
				return usageError(err.Error())
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value in the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := targetPath(flags)
			if err != nil {
				return configError(err)
			}
			cfg, err := readTarget(path)
			if err != nil {
				return err
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return usageError(err.Error())
			}
			if err := cfg.Validate(); err != nil {
				return usageError(err.Error())
			}
			if err := config.SaveToPath(cfg, path); err != nil {
				return configError(err)
			}

			value, _ := cfg.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %v\n", SuccessStyle.Render("[OK]"), args[0], value)
			return nil
		},
	}
}

func newConfigPathCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := targetPath(flags)
			if err != nil {
				return configError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the configuration keys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, key := range config.GetAllKeys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
		},
	}
}
