// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/jeranaias/chatterm/internal/completion"
	"github.com/jeranaias/chatterm/internal/util"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error, including a failed turn
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates a missing or rejected API key
	ExitAuthError = 4
	// ExitNetworkError indicates the completion service could not be reached
	ExitNetworkError = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ExitError carries a specific exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + util.IntToString(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}

// turnError converts a failed completion into a user-facing error. The
// message is the classified description; the raw error stays in the log.
func turnError(err error) error {
	kind := completion.Classify(err)
	code := ExitGeneralError
	switch kind {
	case completion.KindAuth, completion.KindNotConfigured:
		code = ExitAuthError
	case completion.KindNetwork:
		code = ExitNetworkError
	}
	return &ExitError{Code: code, Err: errors.New(kind.Describe())}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

func usageError(msg string) error {
	return &ExitError{Code: ExitUsageError, Err: errors.New(msg)}
}
