// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package output defines the Formatter interface for writing a rendered view
// in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/sheetboard/internal/present"
)

// Formatter writes a view page to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "table", "json", "markdown").
	Name() string

	// Format writes the page to w.
	Format(page present.Page, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

// FormatNames returns the registered format names, sorted.
func FormatNames() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return formatNames()
}

func formatNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
