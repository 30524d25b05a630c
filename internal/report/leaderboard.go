// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package report renders dashboard pages as aligned terminal text.
package report

import (
	"fmt"
	"io"

	"github.com/davetashner/sheetboard/internal/present"
)

// NameWidth caps the display-name column.
const NameWidth = 28

// Leaderboard writes a page summary followed by its ranked table.
func Leaderboard(w io.Writer, p present.Page) error {
	title := p.Title
	if p.Category != "" {
		title += " · " + p.Category
	}
	if _, err := fmt.Fprintf(w, "%s\n", SectionTitle(title)); err != nil {
		return fmt.Errorf("render leaderboard: %w", err)
	}

	if len(p.Rows) == 0 {
		_, err := fmt.Fprintln(w, "  No entries to show.")
		return err
	}

	top := p.Summary.Top
	if top == "" {
		top = present.Placeholder
	}
	if _, err := fmt.Fprintf(w, "  %d entries · total %s · top %s\n\n",
		p.Summary.Count, p.Summary.Total, top); err != nil {
		return fmt.Errorf("render leaderboard: %w", err)
	}

	metric := "Metric"
	if p.MetricLabel != "" {
		metric = p.MetricLabel
	}
	tbl := NewTable(
		Column{Header: "#", Align: AlignRight, Color: ColorMarker},
		Column{Header: "Name", MaxWidth: NameWidth},
		Column{Header: "Handle"},
		Column{Header: "Category", Color: ColorCategory},
		Column{Header: metric, Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, r := range p.Rows {
		tbl.AddRow(r.Marker, r.DisplayName, r.Handle, r.Category, r.Metric, r.Share)
	}
	return tbl.Render(w)
}

// Market writes the market quotes table.
func Market(w io.Writer, p present.MarketPage) error {
	if _, err := fmt.Fprintf(w, "%s\n", SectionTitle("Market")); err != nil {
		return fmt.Errorf("render market: %w", err)
	}
	if len(p.Rows) == 0 {
		_, err := fmt.Fprintln(w, "  Market data unavailable.")
		return err
	}
	tbl := NewTable(
		Column{Header: "Name"},
		Column{Header: "Symbol"},
		Column{Header: "Price", Align: AlignRight},
		Column{Header: "Change", Align: AlignRight, Color: ColorChange},
	)
	for _, r := range p.Rows {
		tbl.AddRow(r.Name, r.Symbol, r.Price, r.Change)
	}
	return tbl.Render(w)
}
