// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatterm/internal/completion"
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/transcript"
	"github.com/jeranaias/chatterm/internal/turn"
	"github.com/jeranaias/chatterm/internal/ui/components"
)

func newLineCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "line",
		Short: "Chat in a plain line-mode REPL",
		Long: `Chat without the full-screen interface.

Commands:
  /color [value]   Show or set the accent color
  /help            Show commands
  /quit            Exit (also Ctrl+C or Ctrl+D)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			return runLine(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LinePrompt reads input with history and line editing.
type LinePrompt struct {
	line        *liner.State
	historyFile string
}

// NewLinePrompt creates a prompt with history loaded from historyFile.
// An empty historyFile disables persistence.
func NewLinePrompt(historyFile string) *LinePrompt {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	p := &LinePrompt{line: line, historyFile: historyFile}
	p.LoadHistory()
	return p
}

// LoadHistory loads history from the history file.
func (p *LinePrompt) LoadHistory() {
	if p.historyFile == "" {
		return
	}
	if f, err := os.Open(p.historyFile); err == nil {
		_, _ = p.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line. Non-blank input is added to history.
func (p *LinePrompt) ReadInput(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory writes history to the history file (0600).
func (p *LinePrompt) SaveHistory() {
	if p.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = p.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (p *LinePrompt) Close() {
	p.SaveHistory()
	p.line.Close()
}

// =============================================================================
// LINE SESSION
// =============================================================================

// lineSession prints the transcript as plain lines and handles slash commands.
type lineSession struct {
	app        *App
	out        io.Writer
	markdown   *components.Markdown
	width      int
	showErrors bool

	unsubscribe func()
}

func newLineSession(app *App, out io.Writer, markdown bool) *lineSession {
	s := &lineSession{
		app:        app,
		out:        out,
		width:      GetTerminalWidth(),
		showErrors: app.Config.UI.ShowErrors,
	}
	if markdown {
		s.markdown = components.NewMarkdown(components.MarkdownAuto)
	}
	s.unsubscribe = app.Store.Subscribe(transcript.ObserverFunc(func(msg model.Message, _ int) {
		s.printMessage(msg)
	}))
	return s
}

func (s *lineSession) close() {
	s.unsubscribe()
}

// prompt is the input prompt in the current accent color.
func (s *lineSession) prompt() string {
	return accentStyle(s.app.Session.Settings.AccentColor()).Render(model.SenderUser.DisplayName() + "> ")
}

// printMessage prints replies. The user's own line is already on screen.
func (s *lineSession) printMessage(msg model.Message) {
	if msg.IsUser() {
		return
	}
	content := msg.Content
	if s.markdown != nil {
		content = s.markdown.Render(content, s.width)
	}
	fmt.Fprintf(s.out, "%s\n%s\n\n",
		AssistantLabelStyle.Render(msg.Sender.DisplayName()),
		strings.TrimRight(content, "\n"))
}

func (s *lineSession) printWelcome() {
	fmt.Fprintln(s.out, TitleStyle.Render("chatterm "+Version))
	fmt.Fprintln(s.out, DimStyle.Render("Model: "+model.DisplayName(s.app.ModelID())))
	if !s.app.Credential.IsSet() && s.app.Client != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render(completion.KindNotConfigured.Describe()))
	}
	fmt.Fprintln(s.out, DimStyle.Render("Type /help for commands, /quit to exit."))
	fmt.Fprintln(s.out)
}

// handle processes one input line and reports whether to keep reading.
func (s *lineSession) handle(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "/") {
		if keep, ok := s.command(trimmed); ok {
			return keep
		}
	}

	_, err := s.app.Controller.Send(ctx, input)
	switch {
	case err == nil, errors.Is(err, turn.ErrEmptyInput):
	case s.showErrors:
		fmt.Fprintln(s.out, DimStyle.Render("[!] "+completion.Classify(err).Describe()))
	}
	return true
}

// command runs a slash command. ok is false for words that are not
// commands, which are sent as prompts instead.
func (s *lineSession) command(input string) (keep, ok bool) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/quit", "/q", "/exit":
		return false, true

	case "/color", "/colour":
		settings := s.app.Session.Settings
		if arg == "" {
			fmt.Fprintf(s.out, "accent %s\n", accentStyle(settings.AccentColor()).Render(settings.AccentColor()))
			for _, p := range session.Presets {
				fmt.Fprintf(s.out, "  %s %s\n", accentStyle(p.Color).Render("##"), p.Name)
			}
			return true, true
		}
		if err := settings.SetAccentColor(arg); err != nil {
			fmt.Fprintln(s.out, ErrorStyle.Render("not a color: "+arg))
			return true, true
		}
		fmt.Fprintln(s.out, SuccessStyle.Render("accent set to "+settings.AccentColor()))

	case "/help", "/h":
		fmt.Fprintln(s.out, "/color [value]   show or set the accent color")
		fmt.Fprintln(s.out, "/quit            exit")

	default:
		return true, false
	}
	return true, true
}

// runLine reads lines until /quit, Ctrl+C or EOF.
func runLine(ctx context.Context, app *App, out io.Writer) error {
	history, err := config.HistoryPath()
	if err != nil {
		history = ""
	}
	prompt := NewLinePrompt(history)
	defer prompt.Close()

	s := newLineSession(app, out, app.Config.UI.Markdown && IsStdoutTTY())
	defer s.close()
	s.printWelcome()

	for {
		input, err := prompt.ReadInput(s.prompt())
		if err != nil {
			// liner.ErrPromptAborted (Ctrl+C) and io.EOF (Ctrl+D) both end the session.
			fmt.Fprintln(out)
			return nil
		}
		if !s.handle(ctx, input) {
			return nil
		}
	}
}
