// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"

	"github.com/davetashner/sheetboard/internal/score"
	"github.com/davetashner/sheetboard/internal/source"
)

// ValidateView checks a view definition and returns every problem found.
func ValidateView(v View) []error {
	var errs []error

	if v.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if !source.ValidSheetName(v.Sheet) {
		errs = append(errs, fmt.Errorf("sheet %q is not a valid sheet name", v.Sheet))
	}
	if v.Columns.Identity == "" {
		errs = append(errs, fmt.Errorf("identity column is required"))
	}
	if v.Composite == nil && v.Columns.Metric == "" {
		errs = append(errs, fmt.Errorf("metric column is required unless a composite score is configured"))
	}

	switch v.Color {
	case "", score.ColorRaw, score.ColorLog, score.ColorAuto:
	default:
		errs = append(errs, fmt.Errorf("color %q must be raw, log, or auto", v.Color))
	}
	if v.LogThreshold < 0 {
		errs = append(errs, fmt.Errorf("log threshold must be non-negative, got %g", v.LogThreshold))
	}

	if c := v.Composite; c != nil {
		if c.A == "" || c.B == "" {
			errs = append(errs, fmt.Errorf("composite needs both metric columns"))
		}
		if err := c.Weights.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("composite: %w", err))
		}
	}

	if j := v.Join; j != nil {
		if !source.ValidSheetName(j.Sheet) {
			errs = append(errs, fmt.Errorf("join sheet %q is not a valid sheet name", j.Sheet))
		}
		if j.Columns.Identity == "" {
			errs = append(errs, fmt.Errorf("join identity column is required"))
		}
		for _, f := range j.Fields {
			if f.As == "" {
				errs = append(errs, fmt.Errorf("join field %q needs a target name", f.Source))
			}
		}
	}

	return errs
}
