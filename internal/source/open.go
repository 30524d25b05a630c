// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package source

import (
	"fmt"
	"io"
)

// Kinds of sheet store accepted by Open.
const (
	KindCSV    = "csv"
	KindSQLite = "sqlite"
)

// Open returns the store of the given kind at location. The returned closer
// releases any resources held by the store.
func Open(kind, location string) (Source, io.Closer, error) {
	switch kind {
	case "", KindCSV:
		return NewCSVDir(location), io.NopCloser(nil), nil
	case KindSQLite:
		s, err := OpenSQLite(location)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q (must be %s or %s)", kind, KindCSV, KindSQLite)
	}
}
