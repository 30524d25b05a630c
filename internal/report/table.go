// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header   string
	Align    Alignment
	Color    ColorFunc // optional per-cell color function
	MaxWidth int       // cells wider than this are truncated with "…"; 0 means no limit
}

// Table renders aligned text tables to an io.Writer. Widths are measured in
// terminal cells, so medals and CJK names line up.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are silently ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = t.fit(i, values[i])
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) fit(i int, s string) string {
	if limit := t.columns[i].MaxWidth; limit > 0 && runewidth.StringWidth(s) > limit {
		return runewidth.Truncate(s, limit, "…")
	}
	return s
}

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	if err := t.renderHeader(w, widths); err != nil {
		return err
	}

	parts := make([]string, len(t.columns))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for _, row := range t.rows {
		if err := t.renderRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) renderHeader(w io.Writer, widths []int) error {
	bold := color.New(color.Bold)
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = pad(bold.Sprint(col.Header), runewidth.StringWidth(col.Header), widths[i], col.Align)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func (t *Table) renderRow(w io.Writer, values []string, widths []int) error {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := values[i]
		display := val
		if col.Color != nil {
			display = col.Color(val)
		}
		// Padding is based on the raw value width, not the ANSI-colored text.
		parts[i] = pad(display, runewidth.StringWidth(val), widths[i], col.Align)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func pad(display string, width, target int, align Alignment) string {
	n := target - width
	if n < 0 {
		n = 0
	}
	if align == AlignRight {
		return strings.Repeat(" ", n) + display
	}
	return display + strings.Repeat(" ", n)
}
