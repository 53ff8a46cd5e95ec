// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chatterm %s\n", Version)
			fmt.Fprintf(out, "  %s %s\n", LabelStyle.Render("Commit:"), GitCommit)
			fmt.Fprintf(out, "  %s %s\n", LabelStyle.Render("Built:"), BuildDate)
			fmt.Fprintf(out, "  %s %s %s/%s\n", LabelStyle.Render("Go:"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
