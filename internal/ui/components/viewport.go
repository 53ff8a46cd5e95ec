// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/ui/styles"
	"github.com/jeranaias/chatterm/internal/util"
)

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable chat area
// =============================================================================

// ChatViewport is the scrollable transcript. It re-renders from its message
// copy, so an accent change recolors every user bubble already shown.
type ChatViewport struct {
	viewport    viewport.Model
	messageList *MessageList
	width       int
	height      int
	ready       bool
	autoScroll  bool
	renders     int
}

// NewChatViewport creates a new ChatViewport
func NewChatViewport(theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ChatViewport{
		viewport:    vp,
		messageList: NewMessageList(theme),
		width:       80,
		height:      20,
		autoScroll:  true,
	}
}

// SetSize updates the viewport dimensions
func (cv *ChatViewport) SetSize(width, height int) {
	cv.width = width
	cv.height = height
	cv.viewport.Width = width
	cv.viewport.Height = height
	cv.messageList.Width = width - 2
	cv.ready = true
	cv.updateContent()
}

// SetMessages replaces the displayed messages.
func (cv *ChatViewport) SetMessages(messages []model.Message) {
	cv.messageList.Messages = append([]model.Message(nil), messages...)
	cv.updateContent()
	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// AppendMessage adds a message and scrolls to it.
func (cv *ChatViewport) AppendMessage(msg model.Message) {
	cv.messageList.Messages = append(cv.messageList.Messages, msg)
	cv.updateContent()
	cv.ScrollToBottom()
}

// SetAccent changes the user bubble color and re-renders.
func (cv *ChatViewport) SetAccent(accent string) {
	cv.messageList.Accent = accent
	cv.updateContent()
}

// SetMarkdown enables or disables markdown rendering for replies.
func (cv *ChatViewport) SetMarkdown(md *Markdown) {
	cv.messageList.Markdown = md
	cv.updateContent()
}

// SetShowTimestamps toggles message times in bubble headers.
func (cv *ChatViewport) SetShowTimestamps(show bool) {
	cv.messageList.ShowTimestamps = show
	cv.updateContent()
}

// Messages returns the number of messages shown.
func (cv *ChatViewport) Messages() int {
	return len(cv.messageList.Messages)
}

// Accent returns the accent color in use.
func (cv *ChatViewport) Accent() string {
	return cv.messageList.Accent
}

// Renders counts content rebuilds.
func (cv *ChatViewport) Renders() int {
	return cv.renders
}

func (cv *ChatViewport) updateContent() {
	cv.renders++
	cv.viewport.SetContent(cv.messageList.View())
}

// ScrollToBottom scrolls to the bottom of the viewport
func (cv *ChatViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.autoScroll = true
}

// ScrollToTop scrolls to the top of the viewport
func (cv *ChatViewport) ScrollToTop() {
	cv.viewport.GotoTop()
	cv.autoScroll = false
}

// AtBottom reports whether the last line is visible.
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// Update handles scrolling keys and mouse wheel.
func (cv *ChatViewport) Update(msg tea.Msg) (*ChatViewport, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			cv.viewport.HalfViewUp()
			cv.autoScroll = false
			return cv, nil
		case "pgdown":
			cv.viewport.HalfViewDown()
			cv.autoScroll = cv.viewport.AtBottom()
			return cv, nil
		case "home":
			cv.ScrollToTop()
			return cv, nil
		case "end":
			cv.ScrollToBottom()
			return cv, nil
		}
		return cv, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		cv.viewport, cmd = cv.viewport.Update(msg)
		cv.autoScroll = cv.viewport.AtBottom()
		return cv, cmd
	}

	return cv, nil
}

// View renders the viewport with a scroll indicator when not at the bottom.
func (cv *ChatViewport) View() string {
	if !cv.ready {
		return ""
	}
	if cv.viewport.AtBottom() || cv.height < 2 {
		return cv.viewport.View()
	}
	// Give up one line for the indicator so the total height stays fixed.
	vp := cv.viewport
	vp.Height--
	view := vp.View()
	percent := util.IntToString(int(cv.viewport.ScrollPercent() * 100))
	indicator := styles.RenderMuted("-- " + percent + "% -- End to jump to latest")
	return lipgloss.JoinVertical(lipgloss.Left, view, indicator)
}
