// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnvVar, dir)
	for _, k := range []string{
		"CHATTERM_MODEL", "CHATTERM_BASE_URL", "CHATTERM_ACCENT",
		"CHATTERM_NO_SOUND", "CHATTERM_LOG_LEVEL", "CHATTERM_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gpt-3.5-turbo-instruct", cfg.Completion.Model)
	assert.Equal(t, "#0A84FF", cfg.UI.AccentColor)
	assert.True(t, cfg.UI.Markdown)
	assert.True(t, cfg.UI.ShowErrors)
	assert.True(t, cfg.Effects.Sound)
	assert.True(t, cfg.Effects.Haptic)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "", FindConfigFile())
}

func TestLoad_TOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[completion]
model = "davinci"

[ui]
accent_color = "green"
markdown = false
show_errors = true

[effects]
sound = false
haptic = true
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "davinci", cfg.Completion.Model)
	assert.Equal(t, "green", cfg.UI.AccentColor)
	assert.False(t, cfg.UI.Markdown)
	assert.False(t, cfg.Effects.Sound)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_JSONAndYAML(t *testing.T) {
	dir := isolate(t)

	jsonPath := filepath.Join(dir, "custom.json")
	writeFile(t, jsonPath, `{"ui":{"accent_color":"#FF0000","theme":"dark"}}`)
	cfg, err := LoadFromPath(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", cfg.UI.AccentColor)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "gpt-3.5-turbo-instruct", cfg.Completion.Model)

	yamlPath := filepath.Join(dir, "config.yaml")
	writeFile(t, yamlPath, "completion:\n  base_url: http://localhost:8080/v1\nlog:\n  level: debug\n")
	assert.Equal(t, yamlPath, FindConfigFile())
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Completion.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PrefersTOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"ui":{"theme":"light"}}`)
	writeFile(t, filepath.Join(dir, "config.toml"), "[ui]\ntheme = \"dark\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	writeFile(t, path, "this is = = not toml")
	_, err := LoadFromPath(path)
	assert.Error(t, err)

	writeFile(t, path, "[ui]\naccent_color = \"mauve-ish\"\n")
	_, err = LoadFromPath(path)
	require.Error(t, err)
	var verrs ValidateErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "ui.accent_color", verrs[0].Field)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CHATTERM_MODEL", "babbage-002")
	t.Setenv("CHATTERM_BASE_URL", "http://127.0.0.1:1234/v1")
	t.Setenv("CHATTERM_ACCENT", "212")
	t.Setenv("CHATTERM_NO_SOUND", "1")
	t.Setenv("CHATTERM_LOG_LEVEL", "debug")
	t.Setenv("CHATTERM_LOG_FILE", "/tmp/chatterm-test.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "babbage-002", cfg.Completion.Model)
	assert.Equal(t, "http://127.0.0.1:1234/v1", cfg.Completion.BaseURL)
	assert.Equal(t, "212", cfg.UI.AccentColor)
	assert.False(t, cfg.Effects.Sound)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/chatterm-test.log", cfg.LogPath())
}

func TestLogPath_Default(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "chatterm.log"), Default().LogPath())
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty model", func(c *Config) { c.Completion.Model = " " }, "completion.model"},
		{"bad url", func(c *Config) { c.Completion.BaseURL = "ftp://x" }, "completion.base_url"},
		{"relative url", func(c *Config) { c.Completion.BaseURL = "/v1" }, "completion.base_url"},
		{"bad color", func(c *Config) { c.UI.AccentColor = "#12" }, "ui.accent_color"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}

	assert.Equal(t, "no validation errors", ValidateErrors{}.Error())
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.UI.AccentColor = "#30D158"
	cfg.Effects.SoundCommand = "paplay /tmp/x.oga"

	require.NoError(t, Save(cfg))

	path := filepath.Join(dir, "config.toml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# chatterm configuration file"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveJSONAndYAML(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.UI.Theme = "light"

	jsonPath := filepath.Join(dir, "out", "c.json")
	require.NoError(t, SaveJSON(cfg, jsonPath))
	loaded, err := LoadFromPath(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)

	yamlPath := filepath.Join(dir, "out", "c.yml")
	require.NoError(t, SaveYAML(cfg, yamlPath))
	loaded, err = LoadFromPath(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestReadFileAndSaveToPath(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CHATTERM_ACCENT", "red")

	for _, name := range []string{"c.toml", "c.json", "c.yaml"} {
		path := filepath.Join(dir, name)
		cfg := Default()
		cfg.UI.AccentColor = "green"
		require.NoError(t, SaveToPath(cfg, path))

		read, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, "green", read.UI.AccentColor, "no env overrides for %s", name)

		loaded, err := LoadFromPath(path)
		require.NoError(t, err, name)
		assert.Equal(t, "red", loaded.UI.AccentColor)
	}

	_, err := ReadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

// =============================================================================
// GET/SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("ui.accent_color")
	require.NoError(t, err)
	assert.Equal(t, "#0A84FF", v)

	require.NoError(t, cfg.Set("ui.accent_color", "#FF453A"))
	assert.Equal(t, "#FF453A", cfg.UI.AccentColor)

	require.NoError(t, cfg.Set("effects.sound", "off"))
	assert.False(t, cfg.Effects.Sound)
	require.NoError(t, cfg.Set("effects.sound", "true"))
	assert.True(t, cfg.Effects.Sound)
	require.NoError(t, cfg.Set("effects.haptic", false))
	assert.False(t, cfg.Effects.Haptic)

	require.NoError(t, cfg.Set("completion.base-url", "http://x/v1"))
	assert.Equal(t, "http://x/v1", cfg.Completion.BaseURL)

	assert.Error(t, cfg.Set("effects.sound", "maybe"))
	assert.Error(t, cfg.Set("effects.sound", 3))
	assert.Error(t, cfg.Set("ui.nope", "x"))
	assert.Error(t, cfg.Set("ui.theme.deeper", "x"))
	_, err = cfg.Get("ui")
	assert.Error(t, err)
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestGetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	assert.Contains(t, keys, "completion.model")
	assert.Contains(t, keys, "ui.accent_color")
	assert.Contains(t, keys, "effects.sound_command")
	assert.Contains(t, keys, "log.file")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestString(t *testing.T) {
	assert.Contains(t, Default().String(), "accent_color")
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[ui]\naccent_color = \"blue\"\n")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.WithDebounce(20 * time.Millisecond)
	defer w.Close()
	require.NoError(t, w.Watch())
	require.NoError(t, w.Watch())

	writeFile(t, path, "[ui]\naccent_color = \"red\"\n")

	select {
	case change := <-w.Changes():
		require.NoError(t, change.Err)
		assert.Equal(t, "red", change.Config.UI.AccentColor)
		assert.Equal(t, w.Path(), change.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.WithDebounce(20 * time.Millisecond)
	defer w.Close()
	require.NoError(t, w.Watch())

	writeFile(t, path, "[ui]\ntheme = \"plaid\"\n")

	select {
	case change := <-w.Changes():
		assert.Error(t, change.Err)
		assert.Nil(t, change.Config)
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.WithDebounce(10 * time.Millisecond)
	defer w.Close()
	require.NoError(t, w.Watch())

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1")

	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected change: %+v", change)
	case <-time.After(200 * time.Millisecond):
	}
}
