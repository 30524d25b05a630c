// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package visitor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

func seeded(total, today, last string) *source.Memory {
	t := record.NewTable(Columns...)
	t.Append(record.Row{"total": total, "today": today, "last_date": last})
	return source.NewMemory(map[string]*record.Table{Sheet: t})
}

func fixedCounter(src source.Source, at time.Time) *Counter {
	c := NewCounter(src, time.FixedZone("KST", 9*3600))
	c.now = func() time.Time { return at }
	return c
}

func stored(t *testing.T, src source.Source) record.Row {
	t.Helper()
	tbl, err := src.Read(context.Background(), Sheet)
	require.NoError(t, err)
	return tbl.Rows[0]
}

func TestVisit_SameDayIncrements(t *testing.T) {
	src := seeded("1,204", "17", "2026-03-01")
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))

	got := c.Visit(context.Background())
	assert.Equal(t, Counts{Total: 1205, Today: 18}, got)

	row := stored(t, src)
	assert.Equal(t, "1205", row["total"])
	assert.Equal(t, "18", row["today"])
	assert.Equal(t, "2026-03-01", row["last_date"])
}

func TestVisit_RolloverUsesZone(t *testing.T) {
	src := seeded("100", "40", "2026-03-01")
	// 15:30 UTC on Mar 1 is 00:30 on Mar 2 in KST.
	c := fixedCounter(src, time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC))

	got := c.Visit(context.Background())
	assert.Equal(t, Counts{Total: 101, Today: 1}, got)
	assert.Equal(t, "2026-03-02", stored(t, src)["last_date"])
}

func TestVisit_CountedContextDoesNotIncrement(t *testing.T) {
	src := seeded("10", "2", "2026-03-01")
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))

	got := c.Visit(WithCounted(context.Background()))
	assert.Equal(t, Counts{Total: 10, Today: 2}, got)
	assert.Equal(t, 0, src.Writes(), "nothing changed, nothing written")
}

func TestVisit_CountedContextStillRollsOver(t *testing.T) {
	src := seeded("10", "2", "2026-02-28")
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))

	got := c.Visit(WithCounted(context.Background()))
	assert.Equal(t, Counts{Total: 10, Today: 0}, got)
	assert.Equal(t, 1, src.Writes())
}

func TestVisit_FractionalCounts(t *testing.T) {
	src := seeded("42.0", "3.0", "2026-03-01")
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
	assert.Equal(t, Counts{Total: 43, Today: 4}, c.Visit(context.Background()))
}

func TestVisit_DegradesToZero(t *testing.T) {
	tests := []struct {
		name string
		src  *source.Memory
	}{
		{"missing sheet", source.NewMemory(nil)},
		{"empty sheet", source.NewMemory(map[string]*record.Table{Sheet: record.NewTable(Columns...)})},
		{"missing column", func() *source.Memory {
			t := record.NewTable("total", "today")
			t.Append(record.Row{"total": "1", "today": "1"})
			return source.NewMemory(map[string]*record.Table{Sheet: t})
		}()},
		{"garbage count", seeded("lots", "1", "2026-03-01")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fixedCounter(tt.src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
			assert.Equal(t, Counts{}, c.Visit(context.Background()))
		})
	}
}

func TestVisit_WriteFailureDegrades(t *testing.T) {
	src := seeded("1", "1", "2026-03-01")
	src.WriteErr = errors.New("quota")
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
	assert.Equal(t, Counts{}, c.Visit(context.Background()))
}

func TestVisit_BypassesCache(t *testing.T) {
	mem := seeded("5", "5", "2026-03-01")
	cached := source.NewCached(mem, time.Hour)
	c := fixedCounter(cached, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))

	c.Visit(context.Background())
	c.Visit(context.Background())
	assert.Equal(t, Counts{Total: 8, Today: 8}, c.Visit(context.Background()))
}

func TestPeek(t *testing.T) {
	src := seeded("9", "4", "2026-02-28")
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
	assert.Equal(t, Counts{Total: 9, Today: 0}, c.Peek(context.Background()))
	assert.Equal(t, 0, src.Writes())
}

func TestSeed(t *testing.T) {
	src := source.NewMemory(map[string]*record.Table{Sheet: Seed()})
	c := fixedCounter(src, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC))
	assert.Equal(t, Counts{Total: 1, Today: 1}, c.Visit(context.Background()))
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
	assert.NotNil(t, LoadLocation(""))
}

func TestMiddleware(t *testing.T) {
	var counted bool
	var id string
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		counted = Counted(r.Context())
		id = ID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, counted)
	require.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, counted)
	assert.Equal(t, cookies[0].Value, id)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddleware_InvalidCookieReissued(t *testing.T) {
	var counted bool
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		counted = Counted(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.False(t, counted)
	assert.Len(t, rec.Result().Cookies(), 1)
}
