// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatterm/internal/credential"
)

const testKey = "sk-test-key-abcdef"

// newTestServer returns a fake completions endpoint.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(credential.New(testKey)).
		WithModel("test-model").
		WithBaseURL(server.URL + "/v1")
	return server, client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_Complete_Success(t *testing.T) {
	var got map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/completions", r.URL.Path)
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"id":"cmpl-1","object":"text_completion","choices":[{"text":"4","index":0},{"text":"four","index":1}]}`)
	})

	text, err := client.Complete(context.Background(), "2+2?", MaxTokens)
	require.NoError(t, err)
	assert.Equal(t, "4", text)

	assert.Equal(t, "2+2?", got["prompt"])
	assert.Equal(t, float64(500), got["max_tokens"])
	assert.Equal(t, "test-model", got["model"])
}

func TestClient_Complete_NoChoices(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"choices":[]}`)
	})

	text, err := client.Complete(context.Background(), "hello", MaxTokens)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := New(credential.New("")).WithBaseURL(server.URL)
	assert.False(t, client.IsConfigured())

	_, err := client.Complete(context.Background(), "hello", MaxTokens)
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, KindNotConfigured, Classify(err))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"auth", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`, KindAuth},
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`, KindQuota},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`, KindRateLimited},
		{"service json", http.StatusInternalServerError, `{"error":{"message":"The server had an error","type":"server_error"}}`, KindService},
		{"service html", http.StatusBadGateway, `<html>bad gateway</html>`, KindService},
		{"malformed", http.StatusOK, `this is not json`, KindMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})

			text, err := client.Complete(context.Background(), "ping", MaxTokens)
			require.Error(t, err)
			assert.Equal(t, "", text)
			assert.Equal(t, tc.want, Classify(err), "error: %v", err)
		})
	}
}

func TestClient_Complete_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(credential.New(testKey)).WithBaseURL(url)
	_, err := client.Complete(context.Background(), "ping", MaxTokens)
	require.Error(t, err)
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestClient_Complete_Canceled(t *testing.T) {
	release := make(chan struct{})
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, "ping", MaxTokens)
	require.Error(t, err)
	assert.Equal(t, KindCanceled, Classify(err))
}

func TestClient_LogsNeverContainKeyOrPrompt(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"choices":[{"text":"ok"}]}`)
	})
	client.WithLogger(logger)

	_, err := client.Complete(context.Background(), "secret prompt text", MaxTokens)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"completion"`)
	assert.Contains(t, out, credential.New(testKey).Fingerprint())
	assert.NotContains(t, out, testKey)
	assert.NotContains(t, out, "secret prompt text")
}

// fakeAPI records requests and returns canned results.
type fakeAPI struct {
	reqs []openai.CompletionRequest
	resp openai.CompletionResponse
	err  error
}

func (f *fakeAPI) CreateCompletion(_ context.Context, req openai.CompletionRequest) (openai.CompletionResponse, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func TestClient_WithAPI(t *testing.T) {
	api := &fakeAPI{resp: openai.CompletionResponse{
		Choices: []openai.CompletionChoice{{Text: "hi there"}},
	}}
	client := New(credential.New(testKey)).WithAPI(api).WithBaseURL("http://ignored")

	text, err := client.Complete(context.Background(), "hello", MaxTokens)
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
	require.Len(t, api.reqs, 1)
	assert.Equal(t, "gpt-3.5-turbo-instruct", api.reqs[0].Model)
	assert.Equal(t, "hello", api.reqs[0].Prompt)
	assert.Equal(t, 500, api.reqs[0].MaxTokens)

	api.err = errors.New("boom")
	_, err = client.Complete(context.Background(), "hello", MaxTokens)
	require.Error(t, err)
	assert.Equal(t, KindUnknown, Classify(err))
}

func TestClient_Options(t *testing.T) {
	client := New(credential.New(testKey))
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, "gpt-3.5-turbo-instruct", client.Model())

	client.WithModel("davinci").WithBaseURL("http://localhost:9999/v1/").WithModel("")
	assert.Equal(t, "davinci-002", client.Model())
	assert.Equal(t, "http://localhost:9999/v1", client.BaseURL())
}

func TestCompleterFunc(t *testing.T) {
	var c Completer = CompleterFunc(func(_ context.Context, prompt string, maxTokens int) (string, error) {
		return strings.ToUpper(prompt), nil
	})
	out, err := c.Complete(context.Background(), "abc", MaxTokens)
	require.NoError(t, err)
	assert.Equal(t, "ABC", out)
}
