// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
package model

import (
	"sort"
	"strings"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gpt-3.5-turbo-instruct"

// ModelInfo contains display information about a completion model.
type ModelInfo struct {
	// ID is the model identifier used in API calls
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// MaxTokens is the maximum context window size
	MaxTokens int `json:"max_tokens"`

	// Description is a brief explanation of the model's strengths
	Description string `json:"description"`
}

// Models is the registry of known models served by the completions endpoint.
var Models = map[string]ModelInfo{
	"instruct": {
		ID:          "gpt-3.5-turbo-instruct",
		Name:        "GPT-3.5 Turbo Instruct",
		MaxTokens:   4096,
		Description: "Instruction-following completion model",
	},
	"davinci": {
		ID:          "davinci-002",
		Name:        "Davinci 002",
		MaxTokens:   16384,
		Description: "Base GPT-3 model, larger context",
	},
	"babbage": {
		ID:          "babbage-002",
		Name:        "Babbage 002",
		MaxTokens:   16384,
		Description: "Small and fast base model",
	},
}

// GetModelInfo looks up a model by short name or API ID.
func GetModelInfo(nameOrID string) (ModelInfo, bool) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if info, ok := Models[key]; ok {
		return info, true
	}
	for _, info := range Models {
		if strings.EqualFold(info.ID, key) {
			return info, true
		}
	}
	return ModelInfo{}, false
}

// ResolveModelID maps a short name to its API ID. Unknown names are
// returned unchanged so custom deployments keep working.
func ResolveModelID(nameOrID string) string {
	if info, ok := GetModelInfo(nameOrID); ok {
		return info.ID
	}
	return strings.TrimSpace(nameOrID)
}

// DisplayName returns the friendly name of a model, or the ID itself.
func DisplayName(id string) string {
	if info, ok := GetModelInfo(id); ok {
		return info.Name
	}
	return id
}

// ModelShortNames returns the sorted short names of all registered models.
func ModelShortNames() []string {
	names := make([]string, 0, len(Models))
	for name := range Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
