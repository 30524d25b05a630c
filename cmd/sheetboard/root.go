// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	sblog "github.com/davetashner/sheetboard/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logJSON   bool
	configDir string
)

// rootCmd is the base command for sheetboard.
var rootCmd = &cobra.Command{
	Use:   "sheetboard",
	Short: "Rank spreadsheet rows into treemaps and leaderboards",
	Long: `Sheetboard reads rows from a sheet store (a directory of CSV files or a
SQLite database), ranks them by a metric, and renders them as a treemap plus
a sortable leaderboard. It serves the dashboard over HTTP, renders single
views to the terminal, and exposes the leaderboards to agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		sblog.Configure(sblog.Options{Verbose: verbose, Quiet: quiet, JSON: logJSON})
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON lines")
	rootCmd.PersistentFlags().StringVarP(&configDir, "dir", "C", ".", "project directory holding .sheetboard.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
