// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

type stubFeed map[string][]market.Point

func (s stubFeed) Fetch(_ context.Context, symbol, _ string) ([]market.Point, error) {
	pts, ok := s[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return pts, nil
}

func testDeps() Deps {
	t := record.NewTable("handle", "name", "followers", "category")
	t.Append(record.Row{"handle": "@alice", "name": "Alice", "followers": "1,000", "category": "AI"})
	t.Append(record.Row{"handle": "@bob", "name": "Bob", "followers": "500", "category": "Crypto"})

	feed := stubFeed{"GC=F": {
		{Time: time.Unix(0, 0), Close: 100},
		{Time: time.Unix(86400, 0), Close: 102},
	}}
	return Deps{
		Source: source.NewMemory(map[string]*record.Table{"followers": t}),
		Views:  pipeline.DefaultViews(),
		Market: market.NewBoard(feed, []market.Symbol{{Name: "Gold", Ticker: "GC=F"}}, "", 0),
	}
}

func TestServer_ListsTools(t *testing.T) {
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, "v1.0.0-test", testDeps(), serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close() //nolint:errcheck // best-effort close in test

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 2)

	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	assert.True(t, names["leaderboard"])
	assert.True(t, names["market"])
}

func TestServer_CallLeaderboard(t *testing.T) {
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = New("test", testDeps()).Run(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close() //nolint:errcheck // best-effort close in test

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "leaderboard",
		Arguments: map[string]any{"view": "followers"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := res.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "@alice")
}

func TestHandleLeaderboard_JSON(t *testing.T) {
	tl := &tools{deps: testDeps()}
	result, _, err := tl.handleLeaderboard(context.Background(), nil, LeaderboardInput{View: "followers"})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text := result.Content[0].(*mcp.TextContent).Text
	var env output.JSONEnvelope
	require.NoError(t, json.Unmarshal([]byte(text), &env))
	require.Len(t, env.View.Rows, 2)
	assert.Equal(t, "Alice", env.View.Rows[0].DisplayName)
	assert.Equal(t, "66.7%", env.View.Rows[0].Share)
}

func TestHandleLeaderboard_CategoryAndLimit(t *testing.T) {
	tl := &tools{deps: testDeps()}
	result, _, err := tl.handleLeaderboard(context.Background(), nil,
		LeaderboardInput{View: "followers", Category: "Crypto", Format: "markdown", Limit: 5})
	require.NoError(t, err)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "# Follower Map · Crypto")
	assert.Contains(t, text, "Bob")
	assert.NotContains(t, text, "Alice")
}

func TestHandleLeaderboard_Errors(t *testing.T) {
	tl := &tools{deps: testDeps()}
	tests := []struct {
		name  string
		input LeaderboardInput
		want  string
	}{
		{"unknown view", LeaderboardInput{View: "nope"}, "unknown view"},
		{"bad format", LeaderboardInput{View: "followers", Format: "sarif"}, "unsupported format"},
		{"html", LeaderboardInput{View: "followers", Format: "html"}, "unsupported format"},
		{"negative limit", LeaderboardInput{View: "followers", Limit: -1}, "limit"},
		{"missing sheet", LeaderboardInput{View: "projects"}, "source unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tl.handleLeaderboard(context.Background(), nil, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHandleMarket(t *testing.T) {
	tl := &tools{deps: testDeps()}
	result, _, err := tl.handleMarket(context.Background(), nil, MarketInput{})
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].(*mcp.TextContent).Text), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Gold", rows[0]["name"])
	assert.Equal(t, "▲ 2.00%", rows[0]["change"])

	result, _, err = tl.handleMarket(context.Background(), nil, MarketInput{Format: "table"})
	require.NoError(t, err)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "GC=F")

	_, _, err = tl.handleMarket(context.Background(), nil, MarketInput{Format: "xml"})
	assert.Error(t, err)
}

func TestHandleMarket_Disabled(t *testing.T) {
	d := testDeps()
	d.Market = nil
	_, _, err := (&tools{deps: d}).handleMarket(context.Background(), nil, MarketInput{})
	assert.Error(t, err)
}
