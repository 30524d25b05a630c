// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/score"
)

// Views returns the built-in views with cfg's overrides applied. Overrides
// for unknown view names are ignored here; Validate reports them.
func Views(cfg *Config) map[string]pipeline.View {
	views := pipeline.DefaultViews()
	if cfg == nil {
		return views
	}
	for name, vc := range cfg.Views {
		v, ok := views[name]
		if !ok {
			continue
		}
		if vc.Title != "" {
			v.Title = vc.Title
		}
		if vc.Sheet != "" {
			v.Sheet = vc.Sheet
		}
		if vc.Color != "" {
			v.Color = score.ColorMode(vc.Color)
		}
		if vc.LogThreshold != 0 {
			v.LogThreshold = vc.LogThreshold
		}
		if vc.TTL != "" {
			v.TTL = parseDuration(vc.TTL, v.TTL)
		}
		if vc.Weights != nil && v.Composite != nil {
			c := *v.Composite
			c.Weights = *vc.Weights
			v.Composite = &c
		}
		views[name] = v
	}
	return views
}
