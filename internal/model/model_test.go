// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_AssignsUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		msg := NewUserMessage("hello")
		require.NotEmpty(t, msg.ID)
		assert.False(t, seen[msg.ID], "duplicate id %s", msg.ID)
		seen[msg.ID] = true
	}
}

func TestNewMessage_KeepsContentVerbatim(t *testing.T) {
	msg := NewUserMessage("  hello\n")
	assert.Equal(t, "  hello\n", msg.Content)
	assert.Equal(t, SenderUser, msg.Sender)
	assert.True(t, msg.IsUser())
	assert.False(t, msg.CreatedAt.IsZero())

	reply := NewAssistantMessage("")
	assert.Equal(t, SenderAssistant, reply.Sender)
	assert.Empty(t, reply.Content)
}

func TestSender_DisplayName(t *testing.T) {
	tests := []struct {
		sender Sender
		want   string
	}{
		{SenderUser, "Me"},
		{SenderAssistant, "ChatGPT model"},
		{Sender("other"), "other"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.sender.DisplayName())
	}
	assert.True(t, SenderUser.Valid())
	assert.False(t, Sender("system").Valid())
}

// =============================================================================
// MODEL REGISTRY TESTS
// =============================================================================

func TestModels_HaveRequiredFields(t *testing.T) {
	for id, info := range Models {
		t.Run(id, func(t *testing.T) {
			assert.NotEmpty(t, info.ID)
			assert.NotEmpty(t, info.Name)
			assert.Positive(t, info.MaxTokens)
		})
	}
}

func TestGetModelInfo(t *testing.T) {
	info, ok := GetModelInfo("instruct")
	require.True(t, ok)
	assert.Equal(t, DefaultModel, info.ID)

	info, ok = GetModelInfo("GPT-3.5-Turbo-Instruct")
	require.True(t, ok)
	assert.Equal(t, "GPT-3.5 Turbo Instruct", info.Name)

	_, ok = GetModelInfo("nonexistent-model")
	assert.False(t, ok)
}

func TestResolveModelID(t *testing.T) {
	assert.Equal(t, "davinci-002", ResolveModelID("davinci"))
	assert.Equal(t, "my-finetune", ResolveModelID(" my-finetune "))
	assert.Equal(t, "Babbage 002", DisplayName("babbage-002"))
	assert.Equal(t, "custom", DisplayName("custom"))
	assert.Equal(t, []string{"babbage", "davinci", "instruct"}, ModelShortNames())
}
