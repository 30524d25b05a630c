// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package rank orders scored rows and assigns leaderboard positions.
package rank

import (
	"sort"
	"strconv"

	"github.com/davetashner/sheetboard/internal/record"
)

// medals mark the top three positions.
var medals = [...]string{"🥇", "🥈", "🥉"}

// Rank returns a copy of rows sorted by Metric descending and numbered 1..N.
// The sort is stable, so ties keep their input order and still receive
// distinct consecutive ranks.
func Rank(rows []record.RankedRow) []record.RankedRow {
	out := make([]record.RankedRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metric > out[j].Metric
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Marker returns the medal glyph for ranks 1-3 and the decimal rank otherwise.
func Marker(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return strconv.Itoa(rank)
}

// Top returns at most n leading rows. n <= 0 returns all rows.
func Top(rows []record.RankedRow, n int) []record.RankedRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
