// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/turn"
)

// TurnCompleteMsg carries the result of a completion call back to Update.
type TurnCompleteMsg struct {
	Outcome turn.Outcome
}

// ConfigChangedMsg is a reload of the watched config file.
type ConfigChangedMsg struct {
	Change config.Change
}

// PulseEndMsg is sent when the status bar flash should be re-checked.
type PulseEndMsg struct{}
