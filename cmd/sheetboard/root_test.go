// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "ranks them by a metric")
	for _, sub := range []string{"serve", "render", "edit", "init", "config", "mcp", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "log-json", "dir"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "global flag --%s", name)
		})
	}

	v := rootCmd.PersistentFlags().ShorthandLookup("v")
	require.NotNil(t, v)
	assert.Equal(t, "verbose", v.Name)
	c := rootCmd.PersistentFlags().ShorthandLookup("C")
	require.NotNil(t, c)
	assert.Equal(t, "dir", c.Name)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sheetboard dev\n", out)
}

func TestExitError(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitUnavailable, "sheetboard: sheet store unavailable"},
		{ExitInvalidArgs, "sheetboard: error"},
	}
	for _, tt := range tests {
		err := exitError(tt.code, "")
		assert.Equal(t, tt.want, err.Error())
		assert.Equal(t, tt.code, err.ExitCode())
	}

	err := exitError(ExitInvalidArgs, "bad %s", "flag")
	assert.Equal(t, "bad flag", err.Error())
}

func TestMCPCmd_IsRegistered(t *testing.T) {
	var names []string
	for _, c := range mcpCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"serve"}, names)
}

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"listen", "refresh", "no-market"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), "serve flag --%s", name)
	}
}

func TestServe_InvalidRefresh(t *testing.T) {
	dir := initProject(t)
	_, err := runCLI(t, "serve", "--dir", dir, "--refresh", "every tuesday")
	require.Error(t, err)

	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitInvalidArgs, ece.code)
	assert.True(t, strings.Contains(err.Error(), "refresh"), err.Error())
}
