// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/davetashner/sheetboard/internal/admin"
	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/redact"
	"github.com/davetashner/sheetboard/internal/source"
)

// loadConfig merges the global and project config files, applies over on
// top, fills defaults, and validates the result.
func loadConfig(over *config.Config) (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "sheetboard: loading global config: %v", err)
	}
	project, err := config.Load(configDir)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "sheetboard: loading config: %v", err)
	}
	merged := config.Merge(global, project)
	if over != nil {
		merged = config.Merge(merged, over)
	}
	cfg := config.Resolve(merged)
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "sheetboard: %v", err)
	}
	if secret := admin.Secret(cfg.AdminPassword); secret != "" {
		redact.Register(secret)
	}
	return cfg, nil
}

// sourceLocation resolves a relative store location against the project dir.
func sourceLocation(cfg *config.Config) string {
	loc := cfg.Source.Location
	if filepath.IsAbs(loc) {
		return loc
	}
	return filepath.Join(configDir, loc)
}

// backend is an open sheet store behind the shared read cache.
type backend struct {
	raw    source.Source
	cached *source.Cached
	closer io.Closer
}

func openBackend(cfg *config.Config) (*backend, error) {
	loc := sourceLocation(cfg)
	src, closer, err := source.Open(cfg.Source.Kind, loc)
	if err != nil {
		return nil, exitError(ExitUnavailable, "sheetboard: open %s store %s: %v", cfg.Source.Kind, loc, err)
	}
	slog.Debug("sheet store opened", "kind", cfg.Source.Kind, "location", loc, "cache_ttl", cfg.CacheDuration())
	return &backend{raw: src, cached: source.NewCached(src, cfg.CacheDuration()), closer: closer}, nil
}

func (b *backend) Close() {
	if err := b.closer.Close(); err != nil {
		slog.Warn("close sheet store", "error", err)
	}
}

// marketBoard returns nil when the market panel is disabled.
func marketBoard(cfg *config.Config) *market.Board {
	if cfg.Market.Disabled {
		return nil
	}
	return market.NewBoard(
		market.NewYahooFeed(cfg.Market.Endpoint),
		cfg.Market.Symbols,
		cfg.Market.Lookback,
		cfg.MarketTTL(),
	)
}

func unavailable(err error) error {
	return exitError(ExitUnavailable, "sheetboard: %v", err)
}
