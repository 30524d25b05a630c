// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package join merges a secondary record set into a primary one on a
// normalized identity key.
package join

import (
	"sort"
	"strings"

	"github.com/davetashner/sheetboard/internal/record"
)

// KeyFunc maps an identity to its join key.
type KeyFunc func(identity string) string

// markers are stripped once from the front of an identity.
const markers = "@$"

// Key trims whitespace, strips one leading '@' or '$', and lower-cases.
func Key(identity string) string {
	s := strings.TrimSpace(identity)
	if s != "" && strings.ContainsRune(markers, rune(s[0])) {
		s = s[1:]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// Field copies one numeric value from a matched secondary record into the
// primary record's Enriched map under As. Source names a secondary metric;
// empty means the secondary record's primary Metric.
type Field struct {
	Source string
	As     string
}

// Dedup indexes secondary records by key. When several records share a key,
// the one with the highest Metric wins; equal metrics keep the earlier record.
func Dedup(secondary []record.Record, key KeyFunc) map[string]record.Record {
	if key == nil {
		key = Key
	}
	sorted := make([]record.Record, len(secondary))
	copy(sorted, secondary)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metric > sorted[j].Metric
	})

	index := make(map[string]record.Record, len(sorted))
	for _, r := range sorted {
		k := key(r.Identity)
		if k == "" {
			continue
		}
		if _, seen := index[k]; !seen {
			index[k] = r
		}
	}
	return index
}

// Left returns a copy of primary where each record gains fields from the
// secondary record sharing its key. Unmatched records receive 0 for every
// field. The result always has the same length and order as primary.
func Left(primary, secondary []record.Record, key KeyFunc, fields []Field) []record.Record {
	if key == nil {
		key = Key
	}
	index := Dedup(secondary, key)

	out := make([]record.Record, len(primary))
	for i, p := range primary {
		enriched := make(map[string]float64, len(p.Enriched)+len(fields))
		for k, v := range p.Enriched {
			enriched[k] = v
		}
		match, ok := index[key(p.Identity)]
		for _, f := range fields {
			var v float64
			if ok {
				if f.Source == "" {
					v = match.Metric
				} else {
					v = match.Value(f.Source)
				}
			}
			enriched[f.As] = v
		}
		p.Enriched = enriched
		out[i] = p
	}
	return out
}

// MatchCount returns how many primary records found a secondary match.
func MatchCount(primary, secondary []record.Record, key KeyFunc) int {
	if key == nil {
		key = Key
	}
	index := Dedup(secondary, key)
	n := 0
	for _, p := range primary {
		if _, ok := index[key(p.Identity)]; ok {
			n++
		}
	}
	return n
}
