// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/davetashner/sheetboard/internal/record"
)

// Cached wraps a Source with a process-wide staleness window. Every caller
// within the window sees the same snapshot. Concurrent misses for one sheet
// share a single underlying read. Clear drops every entry at once.
//
// Each sheet carries a generation that Forget and Clear advance. A read
// that started under an older generation is returned to its callers but
// never stored, and later readers do not join it.
type Cached struct {
	inner       Source
	ttl         time.Duration
	now         func() time.Time
	readTimeout time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
	epoch   uint64            // advanced by Clear
	gens    map[string]uint64 // advanced by Forget
	group   singleflight.Group
}

// SharedReadTimeout bounds a read shared by several callers. The read is
// detached from any single caller's cancellation.
const SharedReadTimeout = time.Minute

type cacheEntry struct {
	table   *record.Table
	fetched time.Time
}

// Compile-time interface check.
var _ Source = (*Cached)(nil)

// NewCached wraps inner with the given default TTL. A zero TTL disables caching.
func NewCached(inner Source, ttl time.Duration) *Cached {
	return &Cached{
		inner:   inner,
		ttl:     ttl,
		now:         time.Now,
		readTimeout: SharedReadTimeout,
		entries:     make(map[string]cacheEntry),
		gens:        make(map[string]uint64),
	}
}

// TTL returns the default staleness window.
func (c *Cached) TTL() time.Duration { return c.ttl }

// Inner returns the wrapped source.
func (c *Cached) Inner() Source { return c.inner }

// Read returns the sheet, reusing a snapshot younger than the default TTL.
func (c *Cached) Read(ctx context.Context, sheet string) (*record.Table, error) {
	return c.ReadWithin(ctx, sheet, c.ttl)
}

// ReadWithin returns the sheet, reusing a snapshot younger than maxAge.
// maxAge == 0 always reads through and refreshes the snapshot.
func (c *Cached) ReadWithin(ctx context.Context, sheet string, maxAge time.Duration) (*record.Table, error) {
	if maxAge > 0 {
		c.mu.Lock()
		e, ok := c.entries[sheet]
		c.mu.Unlock()
		if ok && c.now().Sub(e.fetched) < maxAge {
			return e.table.Clone(), nil
		}
	}

	gen := c.generation(sheet)
	key := sheet + "#" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.readTimeout)
		defer cancel()
		t, err := c.inner.Read(rctx, sheet)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.epoch+c.gens[sheet] == gen {
			c.entries[sheet] = cacheEntry{table: t, fetched: c.now()}
		}
		c.mu.Unlock()
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("shared sheet read", "sheet", sheet)
		}
		return res.Val.(*record.Table).Clone(), nil
	}
}

// generation only grows, so any Forget or Clear after it is taken changes it.
func (c *Cached) generation(sheet string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch + c.gens[sheet]
}

// Write overwrites the sheet in the inner source and drops its snapshot.
// Concurrent writers are not serialized; the last write wins.
func (c *Cached) Write(ctx context.Context, sheet string, t *record.Table) error {
	if err := c.inner.Write(ctx, sheet, t); err != nil {
		return err
	}
	c.Forget(sheet)
	return nil
}

// Forget drops the snapshot of one sheet.
func (c *Cached) Forget(sheet string) {
	c.mu.Lock()
	delete(c.entries, sheet)
	c.gens[sheet]++
	c.mu.Unlock()
}

// Clear drops every cached snapshot.
func (c *Cached) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.epoch++
	c.mu.Unlock()
	slog.Debug("sheet cache cleared", "entries", n)
}

// Sheets delegates to the inner source when it can enumerate sheets.
func (c *Cached) Sheets(ctx context.Context) ([]string, error) {
	if s, ok := c.inner.(Sheets); ok {
		return s.Sheets(ctx)
	}
	return nil, nil
}

// Age returns how old the cached snapshot of sheet is, and whether one exists.
func (c *Cached) Age(sheet string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sheet]
	if !ok {
		return 0, false
	}
	return c.now().Sub(e.fetched), true
}
