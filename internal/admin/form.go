// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package admin

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/davetashner/sheetboard/internal/record"
)

// Form field names used by the grid editor:
//
//	col.<i>       header of column i
//	cell.<r>.<i>  value of row r, column i
//	del.<r>       present when row r should be deleted
const (
	colPrefix  = "col."
	cellPrefix = "cell."
	delPrefix  = "del."
)

// ColField returns the form field name for the header of column i.
func ColField(i int) string { return colPrefix + strconv.Itoa(i) }

// CellField returns the form field name for row r, column i.
func CellField(r, i int) string { return cellPrefix + strconv.Itoa(r) + "." + strconv.Itoa(i) }

// DelField returns the form field name of row r's delete checkbox.
func DelField(r int) string { return delPrefix + strconv.Itoa(r) }

// FromForm rebuilds the full table submitted by the grid editor. Columns with
// a blank header are dropped, deleted rows are skipped and fully blank rows
// are removed.
func FromForm(form url.Values) (*record.Table, error) {
	headers := map[int]string{}
	cells := map[int]map[int]string{}
	deleted := map[int]bool{}

	for key, vals := range form {
		if len(vals) == 0 {
			continue
		}
		val := vals[0]
		switch {
		case strings.HasPrefix(key, colPrefix):
			i, err := strconv.Atoi(strings.TrimPrefix(key, colPrefix))
			if err != nil || i < 0 {
				return nil, fmt.Errorf("bad column field %q", key)
			}
			headers[i] = strings.TrimSpace(val)
		case strings.HasPrefix(key, cellPrefix):
			parts := strings.Split(strings.TrimPrefix(key, cellPrefix), ".")
			if len(parts) != 2 {
				return nil, fmt.Errorf("bad cell field %q", key)
			}
			r, err1 := strconv.Atoi(parts[0])
			i, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil || r < 0 || i < 0 {
				return nil, fmt.Errorf("bad cell field %q", key)
			}
			if cells[r] == nil {
				cells[r] = map[int]string{}
			}
			cells[r][i] = val
		case strings.HasPrefix(key, delPrefix):
			r, err := strconv.Atoi(strings.TrimPrefix(key, delPrefix))
			if err != nil || r < 0 {
				return nil, fmt.Errorf("bad delete field %q", key)
			}
			deleted[r] = true
		}
	}

	colIdx := sortedKeys(headers)
	t := record.NewTable()
	seen := map[string]bool{}
	for _, i := range colIdx {
		name := headers[i]
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		t.AddColumn(name)
	}

	for _, r := range sortedKeys(cells) {
		if deleted[r] {
			continue
		}
		row := record.Row{}
		for i, v := range cells[r] {
			if name := headers[i]; name != "" {
				row[name] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return DropBlank(t), nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
