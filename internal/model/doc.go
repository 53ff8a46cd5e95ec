// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
//
// This package defines the core domain types used throughout the application
// for representing the messages exchanged with the completion service and
// the models that can serve them.
//
// # Key Types
//
//   - Message: Immutable message with sender, content and a unique ID
//   - Sender: Who wrote a message (the user or the assistant)
//   - ModelInfo: Information about a completion model
//
// # Usage
//
// Create a message:
//
//	msg := model.NewUserMessage("Hello!")
//	fmt.Println(msg.Sender.DisplayName(), msg.Content)
//
// Look up model information:
//
//	info, ok := model.GetModelInfo("gpt-3.5-turbo-instruct")
package model
