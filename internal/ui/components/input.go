// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// INPUT AREA COMPONENT - prompt line with a Send button
// =============================================================================

// Placeholder is the empty prompt hint.
const Placeholder = "Type here..."

// SendLabel is the button text.
const SendLabel = "Send"

// MaxInputChars caps a single prompt.
const MaxInputChars = 4096

// InputArea represents the styled text input component
type InputArea struct {
	input textinput.Model
	width int
	busy  string
	theme *styles.Theme
}

// NewInputArea creates a new InputArea component
func NewInputArea(theme *styles.Theme) *InputArea {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.CharLimit = MaxInputChars
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = theme.InputPlaceholder.Italic(true)

	return &InputArea{
		input: ti,
		width: 80,
		theme: theme,
	}
}

// Focus focuses the input
func (i *InputArea) Focus() tea.Cmd {
	return i.input.Focus()
}

// Blur removes focus from the input
func (i *InputArea) Blur() {
	i.input.Blur()
}

// Focused returns whether the input is focused
func (i *InputArea) Focused() bool {
	return i.input.Focused()
}

// SetWidth sets the input area width
func (i *InputArea) SetWidth(width int) {
	i.width = width
	// border, padding, prompt and the button
	inputWidth := width - i.theme.InputContainer.GetHorizontalFrameSize() - lipgloss.Width(i.renderButton()) - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	i.input.Width = inputWidth
}

// SetBusy shows indicator in place of the Send label; empty restores it.
func (i *InputArea) SetBusy(indicator string) {
	i.busy = indicator
}

// Value returns the current input value
func (i *InputArea) Value() string {
	return i.input.Value()
}

// SetValue sets the input value
func (i *InputArea) SetValue(value string) {
	i.input.SetValue(value)
}

// Reset clears the input
func (i *InputArea) Reset() {
	i.input.Reset()
}

// Update handles input updates
func (i *InputArea) Update(msg tea.Msg) (*InputArea, tea.Cmd) {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return i, cmd
}

// View renders the input area
func (i *InputArea) View() string {
	field := i.input.View()
	button := i.renderButton()

	inner := i.width - i.theme.InputContainer.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(field) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, field, lipgloss.NewStyle().Width(gap).Render(""), button)
	outer := i.width - i.theme.InputContainer.GetHorizontalBorderSize()
	return i.theme.InputContainer.Width(max(outer, 1)).Render(row)
}

func (i *InputArea) renderButton() string {
	if i.busy != "" {
		return i.theme.SendButtonBusy.Render(i.busy)
	}
	return i.theme.SendButton.Render(SendLabel)
}
