// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package config

// Merge layers over on top of base and returns a new Config. Non-zero fields
// of over win; zero-value fields fall through to base. Views merge per name
// and per field.
func Merge(base, over *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	if over == nil {
		over = &Config{}
	}
	result := *base

	result.Source.Kind = pick(over.Source.Kind, base.Source.Kind)
	result.Source.Location = pick(over.Source.Location, base.Source.Location)
	result.Listen = pick(over.Listen, base.Listen)
	result.CacheTTL = pick(over.CacheTTL, base.CacheTTL)
	result.Refresh = pick(over.Refresh, base.Refresh)
	result.Timezone = pick(over.Timezone, base.Timezone)
	result.AdminPassword = pick(over.AdminPassword, base.AdminPassword)
	result.OutputFormat = pick(over.OutputFormat, base.OutputFormat)

	// Market: Disabled is sticky once set by either layer.
	result.Market.Disabled = base.Market.Disabled || over.Market.Disabled
	result.Market.Endpoint = pick(over.Market.Endpoint, base.Market.Endpoint)
	result.Market.Lookback = pick(over.Market.Lookback, base.Market.Lookback)
	result.Market.TTL = pick(over.Market.TTL, base.Market.TTL)
	if len(over.Market.Symbols) > 0 {
		result.Market.Symbols = over.Market.Symbols
	}

	if len(base.Views) > 0 || len(over.Views) > 0 {
		result.Views = make(map[string]ViewConfig, len(base.Views)+len(over.Views))
		for name, vc := range base.Views {
			result.Views[name] = vc
		}
		for name, ov := range over.Views {
			vc := result.Views[name]
			vc.Title = pick(ov.Title, vc.Title)
			vc.Sheet = pick(ov.Sheet, vc.Sheet)
			vc.Color = pick(ov.Color, vc.Color)
			vc.TTL = pick(ov.TTL, vc.TTL)
			if ov.LogThreshold != 0 {
				vc.LogThreshold = ov.LogThreshold
			}
			if ov.Weights != nil {
				w := *ov.Weights
				vc.Weights = &w
			}
			result.Views[name] = vc
		}
	}

	return &result
}

func pick(over, base string) string {
	if over != "" {
		return over
	}
	return base
}
