// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/score"
)

func TestMerge_OverWins(t *testing.T) {
	base := &Config{OutputFormat: "markdown", CacheTTL: "5m", Source: SourceConfig{Kind: "csv", Location: "a"}}
	over := &Config{OutputFormat: "json", Source: SourceConfig{Location: "b"}}

	got := Merge(base, over)
	assert.Equal(t, "json", got.OutputFormat)
	assert.Equal(t, "5m", got.CacheTTL)
	assert.Equal(t, "csv", got.Source.Kind)
	assert.Equal(t, "b", got.Source.Location)
}

func TestMerge_NilLayers(t *testing.T) {
	assert.Equal(t, &Config{}, Merge(nil, nil))
	assert.Equal(t, "x", Merge(nil, &Config{Listen: "x"}).Listen)
	assert.Equal(t, "x", Merge(&Config{Listen: "x"}, nil).Listen)
}

func TestMerge_Views(t *testing.T) {
	w := score.Weights{A: 0.2, B: 0.8}
	base := &Config{Views: map[string]ViewConfig{
		"mindshare": {Color: "log", Title: "Mindshare"},
		"followers": {Title: "Followers"},
	}}
	over := &Config{Views: map[string]ViewConfig{
		"mindshare": {Weights: &w, LogThreshold: 50},
	}}

	got := Merge(base, over)
	ms := got.Views["mindshare"]
	assert.Equal(t, "log", ms.Color)
	assert.Equal(t, "Mindshare", ms.Title)
	assert.Equal(t, 50.0, ms.LogThreshold)
	assert.Equal(t, w, *ms.Weights)
	assert.Equal(t, "Followers", got.Views["followers"].Title)

	w.A = 1
	assert.Equal(t, 0.2, got.Views["mindshare"].Weights.A, "weights copied")
	assert.Nil(t, base.Views["mindshare"].Weights, "base untouched")
}

func TestMerge_Market(t *testing.T) {
	base := &Config{Market: MarketConfig{Disabled: true, Symbols: []market.Symbol{{Name: "A", Ticker: "A"}}}}
	over := &Config{Market: MarketConfig{Lookback: "1mo"}}

	got := Merge(base, over)
	assert.True(t, got.Market.Disabled)
	assert.Equal(t, "1mo", got.Market.Lookback)
	assert.Len(t, got.Market.Symbols, 1)
}
