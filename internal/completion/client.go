// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jeranaias/chatterm/internal/credential"
	"github.com/jeranaias/chatterm/internal/logging"
	"github.com/jeranaias/chatterm/internal/model"
)

// MaxTokens is the response length cap sent with every request.
const MaxTokens = 500

// DefaultBaseURL is the base URL of the OpenAI API.
const DefaultBaseURL = "https://api.openai.com/v1"

// ErrNotConfigured indicates the API key is not set.
var ErrNotConfigured = errors.New("completion: API key not configured")

// Completer produces a completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// API is the subset of the go-openai client used here.
type API interface {
	CreateCompletion(ctx context.Context, req openai.CompletionRequest) (openai.CompletionResponse, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the legacy completions endpoint through go-openai.
type Client struct {
	cred       credential.Credential
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	api       API
	customAPI bool
}

// New creates a client for the given credential.
//
// An unset credential is accepted; Complete then fails with ErrNotConfigured
// without contacting the service.
func New(cred credential.Credential) *Client {
	c := &Client{
		cred:    cred,
		model:   model.DefaultModel,
		baseURL: DefaultBaseURL,
		logger:  logging.Discard(),
	}
	c.rebuild()
	return c
}

// WithModel sets the model. Short names from the model registry are resolved.
func (c *Client) WithModel(name string) *Client {
	if id := model.ResolveModelID(name); id != "" {
		c.model = id
	}
	return c
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	if url = strings.TrimSuffix(strings.TrimSpace(url), "/"); url != "" {
		c.baseURL = url
		c.rebuild()
	}
	return c
}

// WithHTTPClient sets the HTTP client used for requests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	c.rebuild()
	return c
}

// WithLogger sets the request logger.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithAPI replaces the SDK client, for tests.
func (c *Client) WithAPI(api API) *Client {
	c.api = api
	c.customAPI = api != nil
	if !c.customAPI {
		c.rebuild()
	}
	return c
}

// Model returns the model used for requests.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsConfigured returns true if an API key is available.
func (c *Client) IsConfigured() bool {
	return c.cred.IsSet()
}

func (c *Client) rebuild() {
	if c.customAPI {
		return
	}
	cfg := openai.DefaultConfig(c.cred.Value())
	cfg.BaseURL = c.baseURL
	if c.httpClient != nil {
		cfg.HTTPClient = c.httpClient
	}
	c.api = openai.NewClientWithConfig(cfg)
}

// Complete sends prompt to the service and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.cred.IsSet() {
		c.logger.Warn("completion skipped",
			"kind", KindNotConfigured.String(),
			"model", c.model)
		return "", ErrNotConfigured
	}

	req := openai.CompletionRequest{
		Model:     c.model,
		Prompt:    prompt,
		MaxTokens: maxTokens,
	}

	start := time.Now()
	resp, err := c.api.CreateCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		kind := Classify(err)
		c.logger.Warn("completion failed",
			"model", c.model,
			"prompt_len", len(prompt),
			"max_tokens", maxTokens,
			"duration", duration,
			"kind", kind.String(),
			"status", statusCode(err),
			"credential", c.cred,
			"error", err.Error())
		return "", fmt.Errorf("completion request: %w", err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Text
	}

	c.logger.Info("completion",
		"model", c.model,
		"prompt_len", len(prompt),
		"max_tokens", maxTokens,
		"duration", duration,
		"choices", len(resp.Choices),
		"output_len", len(text),
		"credential", c.cred)

	return text, nil
}
