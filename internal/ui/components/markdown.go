// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown style names understood by NewMarkdown besides glamour's own.
const (
	MarkdownAuto  = "auto"
	MarkdownNoTTY = "notty"
)

// Markdown renders assistant content with glamour. Renderers are built lazily
// and cached per wrap width since resizing is rare compared to rendering.
type Markdown struct {
	style     string
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a renderer for a glamour standard style ("dark",
// "light", "notty") or "auto" for terminal detection.
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = MarkdownAuto
	}
	return &Markdown{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Style returns the configured style name.
func (m *Markdown) Style() string {
	return m.style
}

// Render renders content wrapped at width. On any renderer failure the
// original content is returned unchanged.
func (m *Markdown) Render(content string, width int) string {
	if m == nil || strings.TrimSpace(content) == "" {
		return content
	}
	r, err := m.renderer(width)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return trimRenderedBlock(out)
}

func (m *Markdown) renderer(width int) (*glamour.TermRenderer, error) {
	if width < 10 {
		width = 10
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.renderers[width]; ok {
		return r, nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.style == MarkdownAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	m.renderers[width] = r
	return r, nil
}

// trimRenderedBlock drops the blank lines glamour puts around a document
// and the padding it appends to each line.
func trimRenderedBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
