// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package mcpserver exposes leaderboards and market quotes as MCP tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/source"
)

// Deps are the data sources the tools read from.
type Deps struct {
	Source source.Reader
	Views  map[string]pipeline.View
	Market *market.Board // nil disables the market tool's data
}

// New creates a new MCP server with sheetboard's tools registered.
func New(version string, d Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "sheetboard",
		Title:   "Sheetboard leaderboards",
		Version: version,
	}, nil)

	registerTools(server, &tools{deps: d})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, d Deps, transport mcp.Transport) error {
	return New(version, d).Run(ctx, transport)
}
