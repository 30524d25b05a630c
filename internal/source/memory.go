// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/davetashner/sheetboard/internal/record"
)

// Memory is an in-process Source. Reads and writes copy tables so callers
// never share state with the store.
type Memory struct {
	mu     sync.RWMutex
	sheets map[string]*record.Table

	// ReadErr, when set, is returned by every Read.
	ReadErr error
	// WriteErr, when set, is returned by every Write.
	WriteErr error

	reads  int
	writes int
}

// Compile-time interface checks.
var (
	_ Source = (*Memory)(nil)
	_ Sheets = (*Memory)(nil)
)

// NewMemory returns a Memory source seeded with the given sheets.
func NewMemory(sheets map[string]*record.Table) *Memory {
	m := &Memory{sheets: make(map[string]*record.Table, len(sheets))}
	for name, t := range sheets {
		m.sheets[name] = t.Clone()
	}
	return m
}

// Read returns a copy of the named sheet.
func (m *Memory) Read(_ context.Context, sheet string) (*record.Table, error) {
	m.mu.Lock()
	m.reads++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ReadErr != nil {
		return nil, unavailable(sheet, m.ReadErr)
	}
	t, ok := m.sheets[sheet]
	if !ok {
		return nil, unavailable(sheet, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet))
	}
	return t.Clone(), nil
}

// Write replaces the named sheet.
func (m *Memory) Write(_ context.Context, sheet string, t *record.Table) error {
	if err := checkSheet(sheet); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.WriteErr != nil {
		return fmt.Errorf("write sheet %q: %w", sheet, m.WriteErr)
	}
	if m.sheets == nil {
		m.sheets = make(map[string]*record.Table)
	}
	m.sheets[sheet] = t.Clone()
	return nil
}

// Sheets lists sheet names in sorted order.
func (m *Memory) Sheets(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sheets))
	for n := range m.sheets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Reads returns how many times Read was called.
func (m *Memory) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Writes returns how many times Write was called.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
