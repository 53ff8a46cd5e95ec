// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/credential"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// StartChatLabel is the welcome screen action.
const StartChatLabel = "Start Chat"

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the start screen shown before the chat.
type Welcome struct {
	version       string
	modelName     string
	keyConfigured bool

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version:   "dev",
		modelName: model.DefaultModel,
		theme:     theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetModelName sets the model name.
func (w *Welcome) SetModelName(name string) {
	w.modelName = model.DisplayName(name)
}

// SetKeyConfigured records whether an API key was found.
func (w *Welcome) SetKeyConfigured(ok bool) {
	w.keyConfigured = ok
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen centred in the terminal.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	lines := []string{
		w.renderLogo(width),
		w.theme.WelcomeHint.Render("v" + w.version),
		"",
		w.theme.WelcomeInfo.Render("Model: " + w.modelName),
	}
	if !w.keyConfigured {
		lines = append(lines, styles.RenderError(credential.EnvVar+" is not set; replies will fail"))
	}
	lines = append(lines,
		"",
		w.theme.WelcomeButton.Render(StartChatLabel),
		"",
		w.theme.WelcomeHint.Render("enter to start  |  ctrl+c to quit"),
	)

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderLogo renders the ASCII art logo, or a single word when narrow.
func (w Welcome) renderLogo(width int) string {
	if width >= 50 {
		logo := `      _           _   _
  ___| |__   __ _| |_| |_ ___ _ __ _ __ ___
 / __| '_ \ / _` + "`" + ` | __| __/ _ \ '__| '_ ` + "`" + ` _ \
| (__| | | | (_| | |_| ||  __/ |  | | | | | |
 \___|_| |_|\__,_|\__|\__\___|_|  |_| |_| |_|`
		return w.theme.WelcomeLogo.Render(logo)
	}
	return w.theme.WelcomeLogo.Render("chatterm")
}
