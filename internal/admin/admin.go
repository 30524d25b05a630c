// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package admin implements password gating and whole-sheet grid editing.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

// EnvPassword overrides the configured admin password.
const EnvPassword = "SHEETBOARD_ADMIN_PASSWORD"

// ErrDisabled is returned when no admin password is configured.
var ErrDisabled = errors.New("admin is disabled: no password configured")

// ErrOutOfRange is returned for edits addressing a row past the end of the table.
var ErrOutOfRange = errors.New("row out of range")

// Secret returns the effective admin password: the environment wins over configured.
func Secret(configured string) string {
	if v := os.Getenv(EnvPassword); v != "" {
		return v
	}
	return configured
}

// Check reports whether given matches secret in constant time. An empty
// secret never matches.
func Check(secret, given string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(given)) == 1
}

// Edit sets one cell. Row may equal the table length to append a row.
type Edit struct {
	Row    int
	Column string
	Value  string
}

// Apply returns a copy of t with edits applied in order. Unknown columns are
// added; an edit at row len(t.Rows) appends an empty row first.
func Apply(t *record.Table, edits []Edit) (*record.Table, error) {
	out := t.Clone()
	if out == nil {
		out = record.NewTable()
	}
	for _, e := range edits {
		col := strings.TrimSpace(e.Column)
		if col == "" {
			return nil, fmt.Errorf("edit row %d: empty column name", e.Row)
		}
		switch {
		case e.Row < 0 || e.Row > len(out.Rows):
			return nil, fmt.Errorf("edit row %d: %w (have %d rows)", e.Row, ErrOutOfRange, len(out.Rows))
		case e.Row == len(out.Rows):
			out.Rows = append(out.Rows, record.Row{})
		}
		out.AddColumn(col)
		out.Rows[e.Row][col] = e.Value
	}
	return out, nil
}

// Delete returns a copy of t without the given row indexes. Duplicate and
// out-of-range indexes are ignored.
func Delete(t *record.Table, rows []int) *record.Table {
	out := t.Clone()
	if out == nil || len(rows) == 0 {
		return out
	}
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		drop[r] = true
	}
	kept := out.Rows[:0]
	for i, r := range out.Rows {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	out.Rows = kept
	return out
}

// Save overwrites sheet with t. Blank rows are dropped first.
func Save(ctx context.Context, w source.Writer, sheet string, t *record.Table) error {
	clean := DropBlank(t)
	if err := w.Write(ctx, sheet, clean); err != nil {
		return fmt.Errorf("save %s: %w", sheet, err)
	}
	return nil
}

// DropBlank returns a copy of t without rows whose cells are all blank.
func DropBlank(t *record.Table) *record.Table {
	out := t.Clone()
	if out == nil {
		return record.NewTable()
	}
	kept := out.Rows[:0]
	for _, r := range out.Rows {
		if !blank(r) {
			kept = append(kept, r)
		}
	}
	out.Rows = kept
	return out
}

func blank(r record.Row) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
