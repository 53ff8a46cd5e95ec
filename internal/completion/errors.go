// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Kind groups completion failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuth
	KindQuota
	KindRateLimited
	KindService
	KindMalformed
	KindCanceled
	KindNotConfigured
)

// String returns a short identifier for logs.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindQuota:
		return "quota"
	case KindRateLimited:
		return "rate_limited"
	case KindService:
		return "service"
	case KindMalformed:
		return "malformed"
	case KindCanceled:
		return "canceled"
	case KindNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}

// Describe returns a one-line message suitable for the user.
func (k Kind) Describe() string {
	switch k {
	case KindNetwork:
		return "Could not reach the completion service"
	case KindAuth:
		return "The API key was rejected"
	case KindQuota:
		return "The account has no remaining quota"
	case KindRateLimited:
		return "Too many requests, try again shortly"
	case KindService:
		return "The completion service returned an error"
	case KindMalformed:
		return "The completion service sent an unreadable response"
	case KindCanceled:
		return "The request was canceled"
	case KindNotConfigured:
		return "No API key: set OpenAI_API_KEY"
	default:
		return "The request failed"
	}
}

// Classify maps an error returned by Complete to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindNotConfigured
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Type == "insufficient_quota" || apiErr.Code == "insufficient_quota" {
			return KindQuota
		}
		return kindForStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindForStatus(reqErr.HTTPStatusCode)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformed
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	return KindUnknown
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusPaymentRequired:
		return KindQuota
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status > 0:
		return KindService
	default:
		return KindUnknown
	}
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
