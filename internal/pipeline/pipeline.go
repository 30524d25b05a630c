// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package pipeline turns a sheet into ranked leaderboard rows:
// read -> normalize -> join -> score -> rank.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/davetashner/sheetboard/internal/join"
	"github.com/davetashner/sheetboard/internal/normalize"
	"github.com/davetashner/sheetboard/internal/rank"
	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/score"
	"github.com/davetashner/sheetboard/internal/source"
)

// ErrUnknownView is returned when a view name is not configured.
var ErrUnknownView = errors.New("unknown view")

// Result is the outcome of one pipeline run.
type Result struct {
	View       View
	Category   string   // Empty means all categories.
	Rows       []record.RankedRow
	Categories []string // Every category with at least one positive row, sorted.
	Total      float64  // Sum of the primary metric over Rows.
	Source     int      // Rows read from the sheet, before filtering.
	Matched    int      // Rows that found a join partner.
	JoinErr    error    // Secondary read failure; the join degrades to defaults.
	Duration   time.Duration
}

// Empty reports whether the run produced no displayable rows.
func (r *Result) Empty() bool { return r == nil || len(r.Rows) == 0 }

// Top returns the first-ranked row, if any.
func (r *Result) Top() (record.RankedRow, bool) {
	if r.Empty() {
		return record.RankedRow{}, false
	}
	return r.Rows[0], true
}

// Run reads the view's sheet from src and computes its ranked rows. A failed
// primary read returns an error wrapping source.ErrSourceUnavailable; a failed
// secondary read is recorded in Result.JoinErr and every join field defaults.
func Run(ctx context.Context, src source.Reader, v View, f Filter) (*Result, error) {
	start := time.Now()

	t, err := source.ReadWithin(ctx, src, v.Sheet, v.TTL)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.Name, err)
	}
	recs := normalize.Table(t, v.Columns)

	var joinErr error
	matched := 0
	if v.Join != nil {
		var secondary []record.Record
		st, err := source.ReadWithin(ctx, src, v.Join.Sheet, v.TTL)
		if err != nil {
			joinErr = err
			slog.Warn("join source unavailable, using defaults", "view", v.Name, "sheet", v.Join.Sheet, "error", err)
		} else {
			secondary = normalize.Table(st, v.Join.Columns)
		}
		matched = join.MatchCount(recs, secondary, v.Join.Key)
		recs = join.Left(recs, secondary, v.Join.Key, v.Join.Fields)
	}

	res := Compute(recs, v, f)
	res.Source = t.Len()
	res.Matched = matched
	res.JoinErr = joinErr
	res.Duration = time.Since(start)

	slog.Debug("view computed", "view", v.Name, "category", f.Category,
		"source_rows", res.Source, "rows", len(res.Rows), "duration", res.Duration)
	return res, nil
}

// Compute scores and ranks already-normalized records. It never fails.
func Compute(recs []record.Record, v View, f Filter) *Result {
	if v.Composite != nil {
		recs = applyComposite(recs, v.Composite)
	}

	res := &Result{
		View:       v,
		Category:   f.Category,
		Categories: categories(recs),
	}

	var filtered []record.Record
	for _, r := range recs {
		if r.Metric <= 0 {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		filtered = append(filtered, r)
	}

	// Composite scores are normalized against the displayed set.
	if v.Composite != nil && f.Category != "" {
		filtered = applyComposite(filtered, v.Composite)
	}

	metrics := make([]float64, len(filtered))
	for i, r := range filtered {
		metrics[i] = r.Metric
		res.Total += r.Metric
	}
	shares := score.Shares(metrics)
	colors := score.Colors(metrics, v.Color, v.LogThreshold)

	rows := make([]record.RankedRow, len(filtered))
	for i, r := range filtered {
		rows[i] = record.RankedRow{
			Record:     r,
			SharePct:   shares[i],
			ColorValue: colors[i],
		}
		if v.Composite != nil {
			rows[i].Score = r.Metric
		}
	}
	res.Rows = rank.Rank(rows)
	return res
}

// applyComposite replaces each record's Metric with its composite score.
func applyComposite(recs []record.Record, c *Composite) []record.Record {
	w := c.Weights
	if w.IsZero() {
		w = score.DefaultWeights
	}
	a := make([]float64, len(recs))
	b := make([]float64, len(recs))
	for i, r := range recs {
		a[i] = r.Value(c.A)
		b[i] = r.Value(c.B)
	}
	scores, _ := score.Mindshare(a, b, w)

	out := make([]record.Record, len(recs))
	for i, r := range recs {
		r.Metric = scores[i]
		out[i] = r
	}
	return out
}

func categories(recs []record.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recs {
		if r.Metric <= 0 || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}
