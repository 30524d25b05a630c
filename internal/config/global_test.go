// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir := GlobalConfigDir()
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "sheetboard"), dir)
}

func TestGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/sheetboard", GlobalConfigDir())
	assert.Equal(t, "/custom/config/sheetboard/config.yaml", GlobalConfigPath())
}

func TestLoadGlobal_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadGlobal_Valid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "sheetboard")
	require.NoError(t, os.MkdirAll(cfgDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"),
		[]byte("admin_password: hunter2\ntimezone: UTC\n"), 0o600))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadGlobal_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "sheetboard")
	require.NoError(t, os.MkdirAll(cfgDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(":\n\t- bad"), 0o600))

	_, err := LoadGlobal()
	assert.Error(t, err)
}
