// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package record

// Row maps column name to raw cell text. A missing key means the cell is absent.
type Row map[string]string

// Table is an ordered set of named-column rows as read from a sheet.
// Column presence is not guaranteed for every row.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns a table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column if it is not already declared.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row, declaring any columns it introduces.
func (t *Table) Append(row Row) {
	for k := range row {
		t.AddColumn(k)
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy so callers can edit without touching cached data.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// Cell returns the cell text and whether it was present.
func (r Row) Cell(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}
