// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package visitor keeps the total and daily visit counts in the "visitors"
// sheet. Whether the current request was already counted travels in the
// request context, set by Middleware from a visitor cookie.
package visitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // Asia/Seoul must resolve without a system zone database.

	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

// Sheet is the worksheet holding the counters.
const Sheet = "visitors"

// DefaultTimezone is the zone in which the daily counter rolls over.
const DefaultTimezone = "Asia/Seoul"

const dateLayout = "2006-01-02"

// Columns are the required header cells of the visitors sheet.
var Columns = []string{"total", "today", "last_date"}

// ErrBadSheet is returned when the visitors sheet is empty or malformed.
var ErrBadSheet = errors.New("visitors sheet is malformed")

// Counts is a snapshot of the counters.
type Counts struct {
	Total int `json:"total"`
	Today int `json:"today"`
}

// Counter reads and updates the visitors sheet. Updates from one process are
// serialized; concurrent processes are last-write-wins.
type Counter struct {
	src source.Source
	loc *time.Location
	now func() time.Time
	mu  sync.Mutex
}

// NewCounter returns a Counter rolling days over in loc (UTC when nil).
func NewCounter(src source.Source, loc *time.Location) *Counter {
	if loc == nil {
		loc = time.UTC
	}
	return &Counter{src: src, loc: loc, now: time.Now}
}

// LoadLocation resolves a zone name, falling back to UTC when the zone
// database lacks it.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown timezone, using UTC", "timezone", name, "error", err)
		return time.UTC
	}
	return loc
}

// Visit rolls the daily counter over if the date changed and, unless ctx is
// marked as already counted, increments both counters. The sheet is written
// only when something changed. Any failure is logged and reported as zeros.
func (c *Counter) Visit(ctx context.Context) Counts {
	counts, err := c.visit(ctx, !Counted(ctx))
	if err != nil {
		slog.Warn("visitor counter unavailable", "error", err)
		return Counts{}
	}
	return counts
}

// Peek returns the current counts without counting a visit. The day rollover
// is still applied to the returned value but not persisted.
func (c *Counter) Peek(ctx context.Context) Counts {
	t, err := source.ReadWithin(ctx, c.src, Sheet, 0)
	if err != nil {
		slog.Warn("visitor counter unavailable", "error", err)
		return Counts{}
	}
	counts, last, err := parse(t)
	if err != nil {
		slog.Warn("visitor counter unavailable", "error", err)
		return Counts{}
	}
	if last != c.today() {
		counts.Today = 0
	}
	return counts
}

func (c *Counter) visit(ctx context.Context, count bool) (Counts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := source.ReadWithin(ctx, c.src, Sheet, 0)
	if err != nil {
		return Counts{}, err
	}
	counts, last, err := parse(t)
	if err != nil {
		return Counts{}, err
	}

	dirty := false
	today := c.today()
	if last != today {
		counts.Today = 0
		dirty = true
	}
	if count {
		counts.Total++
		counts.Today++
		dirty = true
	}
	if !dirty {
		return counts, nil
	}

	t.Rows[0]["total"] = strconv.Itoa(counts.Total)
	t.Rows[0]["today"] = strconv.Itoa(counts.Today)
	t.Rows[0]["last_date"] = today
	if err := c.src.Write(ctx, Sheet, t); err != nil {
		return Counts{}, fmt.Errorf("save visitors: %w", err)
	}
	return counts, nil
}

func (c *Counter) today() string {
	return c.now().In(c.loc).Format(dateLayout)
}

// parse reads the first row. Counters accept thousands separators and a
// fractional part, which is truncated.
func parse(t *record.Table) (Counts, string, error) {
	if t.Len() == 0 {
		return Counts{}, "", fmt.Errorf("%w: no rows", ErrBadSheet)
	}
	for _, col := range Columns {
		if !t.HasColumn(col) {
			return Counts{}, "", fmt.Errorf("%w: missing column %q", ErrBadSheet, col)
		}
	}
	row := t.Rows[0]
	total, err := parseCount(row["total"])
	if err != nil {
		return Counts{}, "", fmt.Errorf("%w: total: %w", ErrBadSheet, err)
	}
	today, err := parseCount(row["today"])
	if err != nil {
		return Counts{}, "", fmt.Errorf("%w: today: %w", ErrBadSheet, err)
	}
	return Counts{Total: total, Today: today}, strings.TrimSpace(row["last_date"]), nil
}

func parseCount(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// Seed returns a fresh visitors table with zero counts.
func Seed() *record.Table {
	t := record.NewTable(Columns...)
	t.Append(record.Row{"total": "0", "today": "0", "last_date": ""})
	return t
}
