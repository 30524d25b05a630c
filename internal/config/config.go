// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package config handles .sheetboard.yaml and .sheetboard.toml files.
package config

import (
	"time"

	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/score"
	"github.com/davetashner/sheetboard/internal/visitor"
)

// Config represents the contents of a sheetboard config file.
type Config struct {
	Source        SourceConfig          `yaml:"source,omitempty" toml:"source,omitempty" json:"source,omitempty"`
	Listen        string                `yaml:"listen,omitempty" toml:"listen,omitempty" json:"listen,omitempty"`
	CacheTTL      string                `yaml:"cache_ttl,omitempty" toml:"cache_ttl,omitempty" json:"cache_ttl,omitempty"`
	Refresh       string                `yaml:"refresh,omitempty" toml:"refresh,omitempty" json:"refresh,omitempty"`
	Timezone      string                `yaml:"timezone,omitempty" toml:"timezone,omitempty" json:"timezone,omitempty"`
	AdminPassword string                `yaml:"admin_password,omitempty" toml:"admin_password,omitempty" json:"admin_password,omitempty"`
	OutputFormat  string                `yaml:"output_format,omitempty" toml:"output_format,omitempty" json:"output_format,omitempty"`
	Market        MarketConfig          `yaml:"market,omitempty" toml:"market,omitempty" json:"market,omitempty"`
	Views         map[string]ViewConfig `yaml:"views,omitempty" toml:"views,omitempty" json:"views,omitempty"`
}

// SourceConfig selects the sheet store.
type SourceConfig struct {
	Kind     string `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty"`
	Location string `yaml:"location,omitempty" toml:"location,omitempty" json:"location,omitempty"`
}

// MarketConfig configures the market panel.
type MarketConfig struct {
	Disabled bool            `yaml:"disabled,omitempty" toml:"disabled,omitempty" json:"disabled,omitempty"`
	Endpoint string          `yaml:"endpoint,omitempty" toml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Lookback string          `yaml:"lookback,omitempty" toml:"lookback,omitempty" json:"lookback,omitempty"`
	TTL      string          `yaml:"ttl,omitempty" toml:"ttl,omitempty" json:"ttl,omitempty"`
	Symbols  []market.Symbol `yaml:"symbols,omitempty" toml:"symbols,omitempty" json:"symbols,omitempty"`
}

// ViewConfig overrides parts of a built-in view.
type ViewConfig struct {
	Title        string         `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Sheet        string         `yaml:"sheet,omitempty" toml:"sheet,omitempty" json:"sheet,omitempty"`
	Color        string         `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty"`
	LogThreshold float64        `yaml:"log_threshold,omitempty" toml:"log_threshold,omitempty" json:"log_threshold,omitempty"`
	Weights      *score.Weights `yaml:"weights,omitempty" toml:"weights,omitempty" json:"weights,omitempty"`
	TTL          string         `yaml:"ttl,omitempty" toml:"ttl,omitempty" json:"ttl,omitempty"`
}

// File names looked up in a project directory, in order.
const (
	FileName     = ".sheetboard.yaml"
	TOMLFileName = ".sheetboard.toml"
)

// Defaults applied by Resolve for fields left empty.
const (
	DefaultSourceKind = "csv"
	DefaultLocation   = "sheets"
	DefaultListen     = "127.0.0.1:8501"
	DefaultCacheTTL   = 60 * time.Second
	DefaultFormat     = "table"
)

// Resolve returns a copy of cfg with defaults filled in.
func Resolve(cfg *Config) *Config {
	out := Merge(&Config{
		Source:       SourceConfig{Kind: DefaultSourceKind, Location: DefaultLocation},
		Listen:       DefaultListen,
		CacheTTL:     DefaultCacheTTL.String(),
		Timezone:     visitor.DefaultTimezone,
		OutputFormat: DefaultFormat,
	}, cfg)
	return out
}

// CacheDuration returns the parsed cache TTL, or DefaultCacheTTL when unset or invalid.
func (c *Config) CacheDuration() time.Duration {
	return parseDuration(c.CacheTTL, DefaultCacheTTL)
}

// MarketTTL returns the parsed market cache TTL, or zero for the package default.
func (c *Config) MarketTTL() time.Duration {
	return parseDuration(c.Market.TTL, 0)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}
