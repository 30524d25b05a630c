// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running sheetboard as an MCP server, exposing leaderboards and market quotes to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing sheetboard's tools:
  - leaderboard: Rank the rows of a view
  - market:      Latest prices and changes of the tracked indices

The server reads the same config and sheet store as "sheetboard serve".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		b, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		return mcpserver.Run(cmd.Context(), Version, mcpserver.Deps{
			Source: b.cached,
			Views:  config.Views(cfg),
			Market: marketBoard(cfg),
		}, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
