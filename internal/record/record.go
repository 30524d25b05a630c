// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package record defines the core domain types for sheetboard.
package record

// DefaultCategory is assigned to records whose category cell is blank.
const DefaultCategory = "unclassified"

// Record is one normalized row of source data.
type Record struct {
	Identity    string             // Handle, ticker, or account id. Used for joins.
	DisplayName string             // Falls back to Identity when blank.
	Metric      float64            // Primary metric, always >= 0.
	Secondary   map[string]float64 // Extra metrics used only by composite scoring.
	Category    string             // Group for the treemap; DefaultCategory when blank.
	Annotations map[string]string  // Free text shown only in detail views.
	Enriched    map[string]float64 // Numeric fields attached by a join.
	Order       int                // Position in the source table.
}

// RankedRow is a Record augmented with presentation-ready derived values.
type RankedRow struct {
	Record

	Rank       int     // 1-based position after the descending sort.
	SharePct   float64 // Share of the summed primary metric (or score) in the set.
	ColorValue float64 // Raw or log-scaled metric used for color mapping.
	Score      float64 // Composite score; zero for non-composite views.
}

// Value looks name up in Secondary, then Enriched, and returns 0 when absent.
func (r Record) Value(name string) float64 {
	if v, ok := r.Secondary[name]; ok {
		return v
	}
	return r.Enriched[name]
}

// Annotation returns the named annotation or "".
func (r Record) Annotation(name string) string {
	return r.Annotations[name]
}
