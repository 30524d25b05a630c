// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package events loads the event board from the "events" sheet.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davetashner/sheetboard/internal/normalize"
	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

// Sheet is the worksheet holding events.
const Sheet = "events"

// DefaultTTL is how long the events sheet is cached.
const DefaultTTL = 10 * time.Minute

// RequiredColumns must all be present in the sheet header.
var RequiredColumns = []string{"event_name", "prizes", "deadline", "announce_date", "link"}

// ErrMissingColumns is returned when the sheet header lacks a required column.
var ErrMissingColumns = errors.New("events sheet is missing required columns")

// Event is one entry on the event board.
type Event struct {
	Name         string `json:"event_name"`
	Prizes       string `json:"prizes"`
	Deadline     string `json:"deadline"`
	AnnounceDate string `json:"announce_date"`
	Link         string `json:"link"`
}

// Load reads and parses the events sheet. An empty sheet yields no events.
func Load(ctx context.Context, src source.Reader, ttl time.Duration) ([]Event, error) {
	t, err := source.ReadWithin(ctx, src, Sheet, ttl)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return Parse(t)
}

// Parse converts a table to events in sheet order. Blank or null-marker cells
// become empty strings.
func Parse(t *record.Table) ([]Event, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	out := make([]Event, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := func(name string) string {
			raw, _ := row.Cell(name)
			return normalize.Text(raw)
		}
		out = append(out, Event{
			Name:         cell("event_name"),
			Prizes:       cell("prizes"),
			Deadline:     cell("deadline"),
			AnnounceDate: cell("announce_date"),
			Link:         cell("link"),
		})
	}
	return out, nil
}
