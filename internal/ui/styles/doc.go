// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the chatterm TUI.

# Color System (colors.go)

Fixed colors use Lip Gloss AdaptiveColor for light/dark terminal detection.
The one exception is the user bubble background, which is the session
accent color and is resolved at render time through AccentColor.

	AssistantBubbleBg - Gray background for assistant replies
	BubbleFg          - White text on both bubble kinds
	ToastErrorBg      - Failure toast background

# Theme (theme.go)

NewTheme detects the terminal color profile with termenv and builds the
lipgloss styles used by the components. The "dark" and "light" theme modes
override background detection; "auto" keeps it.

# Animations (animations.go)

WaitingSpinner is the spinner shown while a reply is pending.
*/
package styles
