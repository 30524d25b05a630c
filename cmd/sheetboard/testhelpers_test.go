// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/sheetboard/internal/admin"
)

// resetFlags restores every command flag to its default so tests do not
// leak state through the package-level flag variables.
func resetFlags() {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		reset := func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)

	// pflag's IntSlice.Set("[]") does not clear, so nil it explicitly.
	editDelete = nil
	configDir = "."
}

// runCLI executes the root command with args in an isolated environment and
// returns everything written to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(admin.EnvPassword, "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--no-color", "--quiet"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

// initProject writes the starter config and sample sheets into a temp dir.
func initProject(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runCLI(t, append([]string{"init", "--dir", dir}, extra...)...)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return dir
}
