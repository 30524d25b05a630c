// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/davetashner/sheetboard/internal/record"
)

// SQLite stores sheets in a SQLite database. Each sheet keeps its column
// order in the sheets table and one JSON object per row in sheet_rows.
type SQLite struct {
	db *sql.DB
}

// Compile-time interface checks.
var (
	_ Source = (*SQLite)(nil)
	_ Sheets = (*SQLite)(nil)
)

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sheets (
		name TEXT PRIMARY KEY,
		columns TEXT NOT NULL DEFAULT '[]',
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet TEXT NOT NULL,
		pos INTEGER NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (sheet, pos)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Read loads a sheet in row order.
func (s *SQLite) Read(ctx context.Context, sheet string) (*record.Table, error) {
	if err := checkSheet(sheet); err != nil {
		return nil, unavailable(sheet, err)
	}

	var colsJSON string
	err := s.db.QueryRowContext(ctx, `SELECT columns FROM sheets WHERE name = ?`, sheet).Scan(&colsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, unavailable(sheet, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet))
	}
	if err != nil {
		return nil, unavailable(sheet, err)
	}

	var cols []string
	if err := json.Unmarshal([]byte(colsJSON), &cols); err != nil {
		return nil, unavailable(sheet, fmt.Errorf("decode columns: %w", err))
	}
	t := record.NewTable(cols...)

	rows, err := s.db.QueryContext(ctx, `SELECT data FROM sheet_rows WHERE sheet = ? ORDER BY pos`, sheet)
	if err != nil {
		return nil, unavailable(sheet, err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, unavailable(sheet, err)
		}
		row := record.Row{}
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, unavailable(sheet, fmt.Errorf("decode row %d: %w", t.Len(), err))
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(sheet, err)
	}
	return t, nil
}

// Write replaces the sheet's columns and rows in a single transaction.
func (s *SQLite) Write(ctx context.Context, sheet string, t *record.Table) error {
	if err := checkSheet(sheet); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	if t == nil {
		t = record.NewTable()
	}

	cols, err := json.Marshal(t.Columns)
	if err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write sheet %q: begin: %w", sheet, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sheets (name, columns, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET columns = excluded.columns, updated_at = excluded.updated_at`,
		sheet, string(cols), time.Now().UTC()); err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE sheet = ?`, sheet); err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sheet_rows (sheet, pos, data) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("write sheet %q row %d: %w", sheet, i, err)
		}
		if _, err := stmt.ExecContext(ctx, sheet, i, string(data)); err != nil {
			return fmt.Errorf("write sheet %q row %d: %w", sheet, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write sheet %q: commit: %w", sheet, err)
	}
	return nil
}

// Sheets lists stored sheet names in sorted order.
func (s *SQLite) Sheets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sheets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("list sheets: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
