// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/present"
	"github.com/davetashner/sheetboard/internal/report"
)

// LeaderboardInput is the input schema for the leaderboard MCP tool.
type LeaderboardInput struct {
	View     string `json:"view" jsonschema:"View to rank: followers, payouts, projects, or mindshare"`
	Category string `json:"category,omitempty" jsonschema:"Only rank entries in this category (default: all)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max rows to return (0 = all)"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json, markdown, or table (default: json)"`
}

// MarketInput is the input schema for the market MCP tool.
type MarketInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: json or table (default: json)"`
}

type tools struct {
	deps Deps
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all sheetboard tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "leaderboard",
		Description: "Rank the entries of a sheetboard view by its metric and return the leaderboard with shares and categories.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.handleLeaderboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "market",
		Description: "Return the latest price and day-over-day change of the tracked market indices.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(true),
		},
	}, t.handleMarket)
}

func (t *tools) handleLeaderboard(ctx context.Context, _ *mcp.CallToolRequest, input LeaderboardInput) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(input.View)
	v, ok := t.deps.Views[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w %q (available: %s)", pipeline.ErrUnknownView, name,
			strings.Join(pipeline.ViewNames(t.deps.Views), ", "))
	}
	if input.Limit < 0 {
		return nil, nil, fmt.Errorf("limit must be non-negative, got %d", input.Limit)
	}

	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	if format == "html" {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
	f, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}

	res, err := pipeline.Run(ctx, t.deps.Source, v, pipeline.Filter{Category: strings.TrimSpace(input.Category)})
	if err != nil {
		return nil, nil, err
	}
	if res.JoinErr != nil {
		slog.Warn("leaderboard join degraded", "view", name, "error", res.JoinErr)
	}

	var buf bytes.Buffer
	if err := f.Format(present.Build(res, present.Options{Limit: input.Limit}), &buf); err != nil {
		return nil, nil, fmt.Errorf("format leaderboard: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func (t *tools) handleMarket(ctx context.Context, _ *mcp.CallToolRequest, input MarketInput) (*mcp.CallToolResult, any, error) {
	if t.deps.Market == nil {
		return nil, nil, fmt.Errorf("market panel is disabled")
	}
	page := present.Market(t.deps.Market.Quotes(ctx))

	var buf bytes.Buffer
	switch input.Format {
	case "", "json":
		if page.Rows == nil {
			page.Rows = []present.MarketRow{}
		}
		if err := output.WriteJSON(&buf, page.Rows, false); err != nil {
			return nil, nil, err
		}
	case "table":
		if err := report.Market(&buf, page); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unsupported format %q", input.Format)
	}
	return textResult(buf.String()), nil, nil
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}
}
