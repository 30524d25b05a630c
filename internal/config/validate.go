// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/score"
	"github.com/davetashner/sheetboard/internal/source"
)

var lookbackRe = regexp.MustCompile(`^[1-9][0-9]*(d|wk|mo|y)$`)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.Source.Kind {
	case "", source.KindCSV, source.KindSQLite:
	default:
		errs = append(errs, fmt.Sprintf("source.kind: invalid value %q (must be %s or %s)",
			cfg.Source.Kind, source.KindCSV, source.KindSQLite))
	}

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	errs = checkDuration(errs, "cache_ttl", cfg.CacheTTL)
	errs = checkDuration(errs, "market.ttl", cfg.Market.TTL)

	if cfg.Refresh != "" {
		if _, err := cron.ParseStandard(cfg.Refresh); err != nil {
			errs = append(errs, fmt.Sprintf("refresh: invalid cron spec %q: %v", cfg.Refresh, err))
		}
	}

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("timezone: %v", err))
		}
	}

	if cfg.Market.Lookback != "" && !lookbackRe.MatchString(cfg.Market.Lookback) {
		errs = append(errs, fmt.Sprintf("market.lookback: invalid value %q (e.g. 7d, 1mo)", cfg.Market.Lookback))
	}
	for i, s := range cfg.Market.Symbols {
		if strings.TrimSpace(s.Ticker) == "" {
			errs = append(errs, fmt.Sprintf("market.symbols[%d]: ticker is required", i))
		}
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("market.symbols[%d]: name is required", i))
		}
	}

	known := pipeline.DefaultViews()
	names := make([]string, 0, len(cfg.Views))
	for name := range cfg.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vc := cfg.Views[name]
		if _, ok := known[name]; !ok {
			errs = append(errs, fmt.Sprintf("views.%s: unknown view (available: %s)",
				name, strings.Join(pipeline.ViewNames(known), ", ")))
			continue
		}
		if vc.Sheet != "" && !source.ValidSheetName(vc.Sheet) {
			errs = append(errs, fmt.Sprintf("views.%s.sheet: invalid sheet name %q", name, vc.Sheet))
		}
		switch score.ColorMode(vc.Color) {
		case "", score.ColorRaw, score.ColorLog, score.ColorAuto:
		default:
			errs = append(errs, fmt.Sprintf("views.%s.color: invalid value %q (must be raw, log, or auto)", name, vc.Color))
		}
		if vc.LogThreshold < 0 {
			errs = append(errs, fmt.Sprintf("views.%s.log_threshold: must be non-negative, got %g", name, vc.LogThreshold))
		}
		errs = checkDuration(errs, "views."+name+".ttl", vc.TTL)
		if vc.Weights != nil {
			if known[name].Composite == nil {
				errs = append(errs, fmt.Sprintf("views.%s.weights: view has no composite score", name))
			} else if err := vc.Weights.Validate(); err != nil {
				errs = append(errs, fmt.Sprintf("views.%s.weights: %v", name, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkDuration(errs []string, key, s string) []string {
	if s == "" {
		return errs
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return append(errs, fmt.Sprintf("%s: %v", key, err))
	}
	if d < 0 {
		return append(errs, fmt.Sprintf("%s: must be non-negative, got %s", key, s))
	}
	return errs
}
