// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package credential

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvVar is the environment variable holding the API key. The name is
// case-sensitive.
const EnvVar = "OpenAI_API_KEY"

// Resolve returns the API key from the environment, or "" if unset.
func Resolve() string {
	return os.Getenv(EnvVar)
}

// LoadDotEnv loads KEY=VALUE files into the process environment.
// Missing files are skipped and variables already set are left untouched.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// =============================================================================
// CREDENTIAL
// =============================================================================

// Credential holds the resolved API key. The zero value is an unset key.
type Credential struct {
	apiKey string
}

// New wraps an API key.
func New(apiKey string) Credential {
	return Credential{apiKey: apiKey}
}

// FromEnv resolves the key from the environment.
func FromEnv() Credential {
	return New(Resolve())
}

// Value returns the raw key for use in request headers.
func (c Credential) Value() string {
	return c.apiKey
}

// IsSet reports whether a non-empty key was resolved.
func (c Credential) IsSet() bool {
	return c.apiKey != ""
}

// Fingerprint returns the first 4 bytes of the key's SHA-256 as hex.
// Safe for logs.
func (c Credential) Fingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// String never returns the key.
func (c Credential) String() string {
	if !c.IsSet() {
		return "<unset>"
	}
	return "<redacted:" + c.Fingerprint() + ">"
}

// GoString keeps %#v from printing the key.
func (c Credential) GoString() string {
	return "credential.Credential{" + c.String() + "}"
}

// LogValue implements slog.LogValuer.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("set", c.IsSet()),
		slog.String("fingerprint", c.Fingerprint()),
	)
}
