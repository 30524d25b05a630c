// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package market

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultChartURL is the Yahoo Finance chart endpoint.
const DefaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooFeed reads daily closes from the Yahoo Finance chart API.
type YahooFeed struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// Compile-time interface check.
var _ Feed = (*YahooFeed)(nil)

// NewYahooFeed returns a feed against endpoint (DefaultChartURL when empty).
func NewYahooFeed(endpoint string) *YahooFeed {
	if endpoint == "" {
		endpoint = DefaultChartURL
	}
	return &YahooFeed{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(250*time.Millisecond), 2),
	}
}

// Fetch requests daily closes for symbol over lookback.
func (y *YahooFeed) Fetch(ctx context.Context, symbol, lookback string) ([]Point, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := y.endpoint + url.PathEscape(symbol) + "?" + url.Values{
		"range":    {lookback},
		"interval": {"1d"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sheetboard")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d: %s", symbol, resp.StatusCode,
			gjson.GetBytes(body, "chart.error.description").String())
	}
	return parseChart(body)
}

// parseChart extracts (timestamp, close) pairs. Null closes become NaN.
func parseChart(body []byte) ([]Point, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid chart response")
	}
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() && desc.String() != "" {
		return nil, fmt.Errorf("chart error: %s", desc.String())
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("chart response has no result")
	}
	stamps := result.Get("timestamp").Array()
	closes := result.Get("indicators.quote.0.close").Array()

	n := min(len(stamps), len(closes))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		c := math.NaN()
		if closes[i].Type == gjson.Number {
			c = closes[i].Float()
		}
		pts[i] = Point{Time: time.Unix(stamps[i].Int(), 0).UTC(), Close: c}
	}
	return pts, nil
}
