// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// DefaultAccentColor is the accent used when none is configured.
const DefaultAccentColor = "#0A84FF"

// ErrInvalidColor is returned for values that are neither hex nor ANSI colors.
var ErrInvalidColor = errors.New("invalid color")

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// =============================================================================
// PRESETS
// =============================================================================

// Preset is a named accent color.
type Preset struct {
	Name  string
	Color string
}

// Presets are the swatches offered by the color picker.
var Presets = []Preset{
	{Name: "blue", Color: "#0A84FF"},
	{Name: "green", Color: "#30D158"},
	{Name: "indigo", Color: "#5E5CE6"},
	{Name: "orange", Color: "#FF9F0A"},
	{Name: "pink", Color: "#FF375F"},
	{Name: "purple", Color: "#BF5AF2"},
	{Name: "red", Color: "#FF453A"},
	{Name: "teal", Color: "#40C8E0"},
}

// PresetIndex returns the index of the preset with the given color, or -1.
func PresetIndex(color string) int {
	for i, p := range Presets {
		if strings.EqualFold(p.Color, color) {
			return i
		}
	}
	return -1
}

// NormalizeColor validates a color and returns its canonical form.
//
// Accepted forms are a preset name, #RGB, #RRGGBB and an ANSI index 0-255.
// Hex colors are returned as upper-case #RRGGBB.
func NormalizeColor(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	for _, p := range Presets {
		if strings.EqualFold(p.Name, v) {
			return p.Color, nil
		}
	}

	if hexColorPattern.MatchString(v) {
		hex := strings.ToUpper(v[1:])
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return "#" + hex, nil
	}

	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
		return strconv.Itoa(n), nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings is the mutable presentation state of a session.
// It is safe for concurrent use.
type Settings struct {
	mu     sync.RWMutex
	accent string

	subMu  sync.Mutex
	subs   map[uint64]func(old, new string)
	order  []uint64
	nextID uint64
}

// NewSettings creates settings with the given accent. An invalid or empty
// accent falls back to DefaultAccentColor.
func NewSettings(accent string) *Settings {
	color, err := NormalizeColor(accent)
	if err != nil {
		color = DefaultAccentColor
	}
	return &Settings{
		accent: color,
		subs:   make(map[uint64]func(old, new string)),
	}
}

// AccentColor returns the current accent color.
func (s *Settings) AccentColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accent
}

// SetAccentColor validates and applies a new accent color, then notifies
// subscribers. Setting the current value again is a no-op.
func (s *Settings) SetAccentColor(value string) error {
	color, err := NormalizeColor(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.accent
	if old == color {
		s.mu.Unlock()
		return nil
	}
	s.accent = color
	s.mu.Unlock()

	for _, fn := range s.subscribers() {
		fn(old, color)
	}
	return nil
}

// Subscribe registers fn to be called after each accent change.
// The returned function removes the subscription.
func (s *Settings) Subscribe(fn func(old, new string)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Settings) subscribers() []func(old, new string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	out := make([]func(old, new string), 0, len(s.subs))
	live := s.order[:0]
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
			live = append(live, id)
		}
	}
	s.order = live
	return out
}
