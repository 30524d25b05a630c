// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/redact"
)

func writeProjectConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o600))
	return dir
}

func TestConfigSubcommands_AreRegistered(t *testing.T) {
	subs := map[string]bool{}
	for _, c := range configCmd.Commands() {
		subs[c.Name()] = true
	}
	for _, name := range []string{"validate", "show", "get", "set"} {
		assert.True(t, subs[name], "%s subcommand should be registered", name)
	}
}

func TestConfigValidate_OK(t *testing.T) {
	dir := writeProjectConfig(t, "source:\n  kind: sqlite\n  location: board.db\n")
	out, err := runCLI(t, "config", "validate", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "config OK")
	assert.Contains(t, out, "sqlite "+filepath.Join(dir, "board.db"))
}

func TestConfigValidate_ReportsAllErrors(t *testing.T) {
	dir := writeProjectConfig(t, "source:\n  kind: excel\ncache_ttl: soon\n")
	_, err := runCLI(t, "config", "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.kind")
	assert.Contains(t, err.Error(), "cache_ttl")
}

func TestConfigShow_RedactsPassword(t *testing.T) {
	t.Cleanup(redact.ResetForTest)
	dir := writeProjectConfig(t, "admin_password: s3cret-pass\nlisten: \":9000\"\n")

	out, err := runCLI(t, "config", "show", "--dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "s3cret-pass")
	assert.Contains(t, out, "admin_password:")
	assert.Contains(t, out, redact.Placeholder)
	assert.Contains(t, out, "9000")
}

func TestConfigShow_JSON(t *testing.T) {
	dir := writeProjectConfig(t, "listen: \":9000\"\n")
	out, err := runCLI(t, "config", "show", "--dir", dir, "--format", "json")
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, ":9000", m["listen"])
	assert.Equal(t, "csv", m["source"].(map[string]any)["kind"], "defaults are filled in")
}

func TestConfigShow_BadFormat(t *testing.T) {
	_, err := runCLI(t, "config", "show", "--dir", t.TempDir(), "--format", "ini")
	require.Error(t, err)
}

func TestConfigSetThenGet(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "config", "set", "--dir", dir, "views.mindshare.weights.a", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Set views.mindshare.weights.a = 0.5")

	out, err = runCLI(t, "config", "get", "--dir", dir, "views.mindshare.weights.a")
	require.NoError(t, err)
	assert.Equal(t, "0.5\n", out)

	out, err = runCLI(t, "config", "get", "--dir", dir, "views.mindshare")
	require.NoError(t, err)
	assert.Contains(t, out, "a: 0.5")
}

func TestConfigSet_Rejects(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "config", "set", "--dir", dir, "nope", "1")
	require.Error(t, err)

	_, err = runCLI(t, "config", "set", "--dir", dir, "source.kind", "excel")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, config.FileName), "invalid values are not written")
}

func TestConfigSet_Global(t *testing.T) {
	resetFlags()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	rootCmd.SetArgs([]string{"--quiet", "config", "set", "--global", "market.disabled", "true"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(home, "sheetboard", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "disabled: true")
}
