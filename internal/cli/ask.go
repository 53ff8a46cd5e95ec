// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatterm/internal/turn"
	"github.com/jeranaias/chatterm/internal/ui/components"
	"github.com/jeranaias/chatterm/internal/util"
)

// maxStdinPrompt caps a prompt read from a pipe.
const maxStdinPrompt = 64 * 1024

func newAskCommand(flags *Flags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Send one prompt and print the reply",
		Long: `Send one prompt to the completion model and print the reply.

The words of the prompt are joined with spaces. Without arguments the
prompt is read from stdin. The reply is rendered as markdown when stdout
is a terminal.

Examples:
  chatterm ask "What is 2+2?"
  echo "Summarize: ..." | chatterm ask
  chatterm ask --plain "List three colors" > colors.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if len(args) == 0 {
				if IsTTY() {
					return usageError("no prompt given")
				}
				var err error
				if prompt, err = readPrompt(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			app, err := NewApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()

			markdown := !plain && app.Config.UI.Markdown && IsStdoutTTY()
			return runAsk(cmd.Context(), app, prompt, cmd.OutOrStdout(), markdown)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the reply without markdown rendering")
	return cmd
}

// readPrompt reads a piped prompt, refusing input over maxStdinPrompt.
func readPrompt(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinPrompt+1))
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	if len(data) > maxStdinPrompt {
		return "", usageError("prompt is longer than " + util.IntToString(maxStdinPrompt/1024) + " KiB")
	}
	return string(data), nil
}

// runAsk runs one turn and writes the reply to out.
func runAsk(ctx context.Context, app *App, prompt string, out io.Writer, markdown bool) error {
	reply, err := app.Controller.Send(ctx, prompt)
	if err != nil {
		if errors.Is(err, turn.ErrEmptyInput) {
			return usageError("prompt is empty")
		}
		return turnError(err)
	}

	text := reply.Content
	if markdown {
		text = components.NewMarkdown(components.MarkdownAuto).Render(text, GetTerminalWidth())
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(out, text)
	return err
}
