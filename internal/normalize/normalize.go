// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package normalize coerces raw sheet cells into typed records. It never fails:
// a cell that cannot be coerced degrades to its zero value.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/davetashner/sheetboard/internal/record"
)

// emptyMarkers are cell values left behind by bad exports that mean "no value".
var emptyMarkers = map[string]bool{
	"nan":  true,
	"none": true,
	"null": true,
	"<na>": true,
}

// Columns maps record fields to sheet column names.
type Columns struct {
	Identity    string
	Name        string
	Metric      string
	Secondary   []string
	Category    string
	Annotations []string

	// DefaultCategory replaces blank categories. Empty means record.DefaultCategory.
	DefaultCategory string
}

// Number parses a numeric cell. Thousands separators, a leading currency sign,
// and surrounding whitespace are ignored. Unparseable, non-finite, or negative
// input yields 0.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Text trims a text cell and maps empty markers ("nan", "null", ...) to "".
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	if emptyMarkers[strings.ToLower(s)] {
		return ""
	}
	return s
}

// Record builds a Record from one raw row. order is the row's source position.
func Record(row record.Row, cols Columns, order int) record.Record {
	rec := record.Record{
		Identity: Text(row[cols.Identity]),
		Order:    order,
	}

	if cols.Name != "" {
		rec.DisplayName = Text(row[cols.Name])
	}
	if rec.DisplayName == "" {
		rec.DisplayName = rec.Identity
	}

	if cols.Metric != "" {
		rec.Metric = Number(row[cols.Metric])
	}

	if len(cols.Secondary) > 0 {
		rec.Secondary = make(map[string]float64, len(cols.Secondary))
		for _, c := range cols.Secondary {
			rec.Secondary[c] = Number(row[c])
		}
	}

	if cols.Category != "" {
		rec.Category = Text(row[cols.Category])
	}
	if rec.Category == "" {
		rec.Category = cols.DefaultCategory
		if rec.Category == "" {
			rec.Category = record.DefaultCategory
		}
	}

	if len(cols.Annotations) > 0 {
		rec.Annotations = make(map[string]string, len(cols.Annotations))
		for _, c := range cols.Annotations {
			rec.Annotations[c] = Text(row[c])
		}
	}

	return rec
}

// Table normalizes every row of t. A nil table yields nil.
func Table(t *record.Table, cols Columns) []record.Record {
	if t.Len() == 0 {
		return nil
	}
	out := make([]record.Record, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = Record(row, cols, i)
	}
	return out
}

// Positive returns the records whose primary metric is greater than zero.
func Positive(recs []record.Record) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for _, r := range recs {
		if r.Metric > 0 {
			out = append(out, r)
		}
	}
	return out
}
