// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package completion provides the client for the text-completion service.
//
// A request carries a prompt and a fixed token cap (MaxTokens). Only the
// text of the first choice is used; a response without choices yields an
// empty string. The client performs exactly one request per call: there are
// no retries and no client-side timeout, so cancellation is only possible
// through the caller's context.
//
// # Usage
//
//	client := completion.New(credential.FromEnv()).
//	    WithModel("gpt-3.5-turbo-instruct").
//	    WithLogger(logger)
//
//	text, err := client.Complete(ctx, "2+2?", completion.MaxTokens)
//	if err != nil {
//	    log.Printf("failed: %s", completion.Classify(err).Describe())
//	}
//
// # Errors
//
// Failures are grouped by Classify into a small set of kinds (network,
// authentication, quota, rate limit, service, malformed response, canceled,
// not configured) for logging and for optional display.
package completion
