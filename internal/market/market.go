// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package market fetches index price history and derives latest price and
// day-over-day change for the market panel.
package market

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/davetashner/sheetboard/internal/score"
)

// Point is one close in a price series. Close is NaN when the feed had no value.
type Point struct {
	Time  time.Time
	Close float64
}

// Feed fetches a price series for symbol covering lookback (e.g. "7d").
type Feed interface {
	Fetch(ctx context.Context, symbol, lookback string) ([]Point, error)
}

// Symbol is one tracked instrument.
type Symbol struct {
	Name     string `yaml:"name" toml:"name" json:"name"`
	Ticker   string `yaml:"ticker" toml:"ticker" json:"ticker"`
	Category string `yaml:"category,omitempty" toml:"category" json:"category,omitempty"`
}

// DefaultSymbols are the indices shown when none are configured.
var DefaultSymbols = []Symbol{
	{Name: "KOSPI", Ticker: "^KS11", Category: "Major Asset"},
	{Name: "Gold", Ticker: "GC=F", Category: "Major Asset"},
	{Name: "Ethereum", Ticker: "ETH-USD", Category: "Major Asset"},
}

// DefaultLookback is the history window requested per symbol.
const DefaultLookback = "7d"

// DefaultTTL is how long a set of quotes is reused.
const DefaultTTL = 5 * time.Minute

// Quote is the latest price and change of one symbol.
type Quote struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Board fetches and caches quotes for a fixed symbol list.
type Board struct {
	feed     Feed
	symbols  []Symbol
	lookback string
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	quotes  []Quote
	fetched time.Time
}

// NewBoard returns a Board. Empty symbols means DefaultSymbols; empty lookback
// means DefaultLookback; ttl <= 0 means DefaultTTL.
func NewBoard(feed Feed, symbols []Symbol, lookback string, ttl time.Duration) *Board {
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	if lookback == "" {
		lookback = DefaultLookback
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{feed: feed, symbols: symbols, lookback: lookback, ttl: ttl, now: time.Now}
}

// Quotes returns the latest quotes. Symbols whose fetch fails or whose series
// has fewer than two closes are skipped. An empty result is not cached.
func (b *Board) Quotes(ctx context.Context) []Quote {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.quotes) > 0 && b.now().Sub(b.fetched) < b.ttl {
		return append([]Quote(nil), b.quotes...)
	}

	quotes := make([]Quote, 0, len(b.symbols))
	for _, s := range b.symbols {
		pts, err := b.feed.Fetch(ctx, s.Ticker, b.lookback)
		if err != nil {
			slog.Warn("market fetch failed", "symbol", s.Ticker, "error", err)
			continue
		}
		q, ok := QuoteFrom(s, pts)
		if !ok {
			slog.Debug("not enough closes for quote", "symbol", s.Ticker, "points", len(pts))
			continue
		}
		quotes = append(quotes, q)
	}

	if len(quotes) > 0 {
		b.quotes = quotes
		b.fetched = b.now()
	}
	return append([]Quote(nil), quotes...)
}

// Clear drops the cached quotes.
func (b *Board) Clear() {
	b.mu.Lock()
	b.quotes = nil
	b.mu.Unlock()
}

// QuoteFrom derives a quote from a series: the latest finite close is the
// price, and the change is measured against the close before it.
func QuoteFrom(s Symbol, pts []Point) (Quote, bool) {
	closes := make([]float64, 0, len(pts))
	valid := 0
	var last float64
	for _, p := range pts {
		closes = append(closes, p.Close)
		if !math.IsNaN(p.Close) && !math.IsInf(p.Close, 0) {
			valid++
			last = p.Close
		}
	}
	if valid < 2 {
		return Quote{}, false
	}
	category := s.Category
	if category == "" {
		category = "Market"
	}
	return Quote{
		Name:      s.Name,
		Symbol:    s.Ticker,
		Category:  category,
		Price:     last,
		ChangePct: score.PercentChange(closes),
	}, true
}
