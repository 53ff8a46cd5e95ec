// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package credential resolves the completion service API key.
//
// The key is read once at startup from the OpenAI_API_KEY environment
// variable. A missing key is not an error; the completion client reports it
// when a request is attempted. The key is never logged or displayed: the
// Credential type redacts itself in fmt and slog output and exposes only a
// short fingerprint for correlating log lines.
package credential
