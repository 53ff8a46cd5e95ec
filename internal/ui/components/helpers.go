// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/jeranaias/chatterm/internal/util"

func pluralMessages(n int) string {
	return util.Plural(n, "message", "messages")
}
