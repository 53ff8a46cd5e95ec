// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/chatterm/internal/util"
)

// Session identifies one run of the application.
type Session struct {
	ID        string
	StartTime time.Time
	Settings  *Settings
}

// New starts a session with the given default accent.
func New(accent string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		Settings:  NewSettings(accent),
	}
}

// ShortID returns the first 8 characters of the session ID.
func (s *Session) ShortID() string {
	return util.TruncateRunesNoEllipsis(s.ID, 8)
}

// Duration returns how long the session has been running.
func (s *Session) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return util.IntToString(secs) + "s"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return util.IntToString(mins) + "m"
		}
		return util.IntToString(mins) + "m " + util.IntToString(secs) + "s"
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return util.IntToString(hours) + "h " + util.IntToString(mins) + "m"
}
