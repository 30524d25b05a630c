// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/sheetboard/internal/record"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1,000", 1000},
		{" 1,234,567 ", 1234567},
		{"500", 500},
		{"12.5", 12.5},
		{"$2,500", 2500},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"nan", 0},
		{"NaN", 0},
		{"inf", 0},
		{"-42", 0},
		{"-0.5", 0},
		{"1e3", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.raw))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(""))
	assert.Equal(t, "", Text("nan"))
	assert.Equal(t, "", Text(" NaN "))
	assert.Equal(t, "", Text("None"))
	assert.Equal(t, "", Text("null"))
	assert.Equal(t, "hello", Text("  hello "))
	assert.Equal(t, "nano", Text("nano"))
}

func TestRecord_DisplayNameFallback(t *testing.T) {
	cols := Columns{Identity: "handle", Name: "name", Metric: "followers"}

	rec := Record(record.Row{"handle": "alice", "name": ""}, cols, 0)
	assert.Equal(t, "alice", rec.DisplayName)

	rec = Record(record.Row{"handle": "alice"}, cols, 0)
	assert.Equal(t, "alice", rec.DisplayName, "missing name column falls back too")

	rec = Record(record.Row{"handle": "alice", "name": "nan"}, cols, 0)
	assert.Equal(t, "alice", rec.DisplayName)

	rec = Record(record.Row{"handle": "alice", "name": "Alice A."}, cols, 0)
	assert.Equal(t, "Alice A.", rec.DisplayName)
}

func TestRecord_MetricNeverNegative(t *testing.T) {
	cols := Columns{Identity: "handle", Metric: "followers"}
	for _, raw := range []string{"-10", "text", "", "nan", "-1,000"} {
		rec := Record(record.Row{"handle": "x", "followers": raw}, cols, 0)
		assert.GreaterOrEqual(t, rec.Metric, 0.0, "raw=%q", raw)
	}
	rec := Record(record.Row{"handle": "x"}, cols, 0)
	assert.Equal(t, 0.0, rec.Metric)
}

func TestRecord_CategoryDefault(t *testing.T) {
	cols := Columns{Identity: "handle", Category: "category"}
	rec := Record(record.Row{"handle": "x", "category": " "}, cols, 0)
	assert.Equal(t, record.DefaultCategory, rec.Category)

	cols.DefaultCategory = "misc"
	rec = Record(record.Row{"handle": "x"}, cols, 0)
	assert.Equal(t, "misc", rec.Category)

	rec = Record(record.Row{"handle": "x", "category": "crypto"}, cols, 0)
	assert.Equal(t, "crypto", rec.Category)
}

func TestRecord_SecondaryAndAnnotations(t *testing.T) {
	cols := Columns{
		Identity:    "handle",
		Secondary:   []string{"mentions", "views"},
		Annotations: []string{"note", "bio"},
	}
	rec := Record(record.Row{
		"handle":   "bob",
		"mentions": "10",
		"views":    "bad",
		"note":     "nan",
		"bio":      " builder ",
	}, cols, 3)

	assert.Equal(t, 10.0, rec.Secondary["mentions"])
	assert.Equal(t, 0.0, rec.Secondary["views"])
	assert.Equal(t, "", rec.Annotation("note"))
	assert.Equal(t, "builder", rec.Annotation("bio"))
	assert.Equal(t, 3, rec.Order)
}

func TestTable_EndToEndCoercion(t *testing.T) {
	tbl := record.NewTable("id", "followers")
	tbl.Append(record.Row{"id": "a", "followers": "1,000"})
	tbl.Append(record.Row{"id": "b", "followers": ""})
	tbl.Append(record.Row{"id": "c", "followers": "500"})

	recs := Table(tbl, Columns{Identity: "id", Metric: "followers"})
	require.Len(t, recs, 3)
	assert.Equal(t, 1000.0, recs[0].Metric)
	assert.Equal(t, 0.0, recs[1].Metric)
	assert.Equal(t, 500.0, recs[2].Metric)

	pos := Positive(recs)
	require.Len(t, pos, 2)
	assert.Equal(t, "a", pos[0].Identity)
	assert.Equal(t, "c", pos[1].Identity)
}

func TestTable_Nil(t *testing.T) {
	assert.Nil(t, Table(nil, Columns{}))
}
