// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/session"
	"github.com/jeranaias/chatterm/internal/ui/styles"
	"github.com/jeranaias/chatterm/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript message.
type MessageBubble struct {
	Message       model.Message
	Width         int
	Accent        string
	ShowTimestamp bool
	markdown      *Markdown
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message: msg,
		Width:   80,
		Accent:  session.DefaultAccentColor,
		theme:   theme,
	}
}

// SetWidth sets the available row width.
func (b *MessageBubble) SetWidth(width int) *MessageBubble {
	b.Width = width
	return b
}

// SetAccent sets the user bubble background.
func (b *MessageBubble) SetAccent(accent string) *MessageBubble {
	b.Accent = accent
	return b
}

// SetMarkdown enables markdown rendering of assistant content. Nil disables it.
func (b *MessageBubble) SetMarkdown(md *Markdown) *MessageBubble {
	b.markdown = md
	return b
}

// View renders the message bubble
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// maxContentWidth is the widest a bubble body may be, padding excluded.
func (b *MessageBubble) maxContentWidth() int {
	limit := styles.BubbleWidth(b.Width) - 2
	if limit < 10 {
		limit = 10
	}
	return limit
}

// ==========================================================================
// USER BUBBLE - accent background, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := displayContent(b.Message.Content)
	wrapped := util.Wrap(content, b.maxContentWidth())

	bubble := b.theme.UserBubble.
		Background(styles.AccentColor(b.Accent)).
		Render(wrapped)

	header := b.renderHeader()
	block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

// ==========================================================================
// ASSISTANT BUBBLE - gray background, left-aligned
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := displayContent(b.Message.Content)

	var body string
	if b.markdown != nil {
		body = b.markdown.Render(content, b.maxContentWidth())
	} else {
		body = util.Wrap(content, b.maxContentWidth())
	}

	bubble := b.theme.AssistantBubble.Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), bubble)
}

func (b *MessageBubble) renderHeader() string {
	parts := []string{b.theme.BubbleHeader.Render(b.Message.Sender.DisplayName())}
	if b.ShowTimestamp && !b.Message.CreatedAt.IsZero() {
		parts = append(parts, styles.RenderMuted(formatTime(b.Message.CreatedAt)))
	}
	return strings.Join(parts, " ")
}

// displayContent strips the blank lines completions usually start with.
// The transcript keeps the raw text.
func displayContent(content string) string {
	content = strings.Trim(content, "\r\n")
	if strings.TrimSpace(content) == "" {
		return "..."
	}
	return content
}

func formatTime(t time.Time) string {
	return t.Format("15:04")
}

// =============================================================================
// MESSAGE LIST COMPONENT - For rendering multiple messages
// =============================================================================

// MessageList renders a transcript as a column of bubbles.
type MessageList struct {
	Messages       []model.Message
	Width          int
	Accent         string
	ShowTimestamps bool
	Markdown       *Markdown
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:  80,
		Accent: session.DefaultAccentColor,
		theme:  theme,
	}
}

// View renders all messages
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)

		return emptyStyle.Render("No messages yet. Say something!")
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme).
			SetWidth(ml.Width).
			SetAccent(ml.Accent).
			SetMarkdown(ml.Markdown)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n\n")
}
