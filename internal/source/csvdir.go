// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/testable"
)

// csvExt is the file extension of a sheet file.
const csvExt = ".csv"

// CSVDir stores each sheet as <dir>/<sheet>.csv with a header row.
type CSVDir struct {
	dir string
	fs  testable.FileSystem
}

// Compile-time interface checks.
var (
	_ Source = (*CSVDir)(nil)
	_ Sheets = (*CSVDir)(nil)
)

// NewCSVDir returns a CSVDir rooted at dir.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir, fs: testable.DefaultFS}
}

// WithFS replaces the file system, for tests.
func (c *CSVDir) WithFS(fsys testable.FileSystem) *CSVDir {
	c.fs = fsys
	return c
}

// Dir returns the root directory.
func (c *CSVDir) Dir() string { return c.dir }

func (c *CSVDir) path(sheet string) string {
	return filepath.Join(c.dir, sheet+csvExt)
}

// Read parses <sheet>.csv. Short rows leave trailing cells absent; extra
// cells beyond the header are ignored.
func (c *CSVDir) Read(ctx context.Context, sheet string) (*record.Table, error) {
	if err := checkSheet(sheet); err != nil {
		return nil, unavailable(sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable(sheet, err)
	}

	data, err := c.fs.ReadFile(c.path(sheet))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, unavailable(sheet, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet))
		}
		return nil, unavailable(sheet, err)
	}

	t, err := decodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, unavailable(sheet, err)
	}
	return t, nil
}

// Write replaces <sheet>.csv atomically via a temp file and rename.
func (c *CSVDir) Write(ctx context.Context, sheet string, t *record.Table) error {
	if err := checkSheet(sheet); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}

	var buf bytes.Buffer
	if err := encodeCSV(&buf, t); err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}

	if err := c.fs.MkdirAll(c.dir, 0o750); err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}
	final := c.path(sheet)
	tmp := final + ".tmp"
	if err := c.fs.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}
	if err := c.fs.Rename(tmp, final); err != nil {
		_ = c.fs.Remove(tmp)
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}
	return nil
}

// Sheets lists the sheet files in the directory.
func (c *CSVDir) Sheets(_ context.Context) ([]string, error) {
	entries, err := c.fs.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), csvExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), csvExt)
		if ValidSheetName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func decodeCSV(r io.Reader) (*record.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return record.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	t := record.NewTable(header...)
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", t.Len()+2, err)
		}
		row := make(record.Row, len(header))
		for i, col := range header {
			if col == "" || i >= len(fields) {
				continue
			}
			row[col] = fields[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func encodeCSV(w io.Writer, t *record.Table) error {
	cw := csv.NewWriter(w)
	if t == nil {
		t = record.NewTable()
	}
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	fields := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			fields[i] = row[col]
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
