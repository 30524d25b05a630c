// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package source reads and writes sheets: named tables of string cells.
// Writes always replace the whole sheet; the last writer wins.
package source

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/davetashner/sheetboard/internal/record"
)

// ErrSourceUnavailable wraps any failure to read a sheet.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrSheetNotFound is returned (wrapped) when a sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// Reader reads a whole sheet.
type Reader interface {
	Read(ctx context.Context, sheet string) (*record.Table, error)
}

// Writer overwrites a whole sheet.
type Writer interface {
	Write(ctx context.Context, sheet string, t *record.Table) error
}

// Source is a readable and writable sheet store.
type Source interface {
	Reader
	Writer
}

// Sheets is implemented by sources that can enumerate their sheets.
type Sheets interface {
	Sheets(ctx context.Context) ([]string, error)
}

// freshReader is implemented by sources that honor a per-read staleness window.
type freshReader interface {
	ReadWithin(ctx context.Context, sheet string, maxAge time.Duration) (*record.Table, error)
}

// ReadWithin reads sheet from r, accepting cached data no older than maxAge
// when r supports it. A negative maxAge uses r's default window.
func ReadWithin(ctx context.Context, r Reader, sheet string, maxAge time.Duration) (*record.Table, error) {
	if fr, ok := r.(freshReader); ok && maxAge >= 0 {
		return fr.ReadWithin(ctx, sheet, maxAge)
	}
	return r.Read(ctx, sheet)
}

var sheetNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{0,63}$`)

// ValidSheetName reports whether name is safe to use as a file or key name.
func ValidSheetName(name string) bool {
	return sheetNameRe.MatchString(name)
}

func checkSheet(name string) error {
	if !ValidSheetName(name) {
		return fmt.Errorf("invalid sheet name %q", name)
	}
	return nil
}

// unavailable wraps err so callers can match ErrSourceUnavailable.
func unavailable(sheet string, err error) error {
	return fmt.Errorf("read sheet %q: %w: %w", sheet, ErrSourceUnavailable, err)
}
