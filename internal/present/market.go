// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package present

import (
	"github.com/davetashner/sheetboard/internal/market"
)

// MarketRow is one formatted quote.
type MarketRow struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Change   string `json:"change"`
	Up       bool   `json:"up"`
}

// MarketPage is the market panel: a treemap sized by price and colored by
// change, plus the formatted quotes.
type MarketPage struct {
	Treemap []Node      `json:"treemap"`
	Rows    []MarketRow `json:"rows"`
}

// Market builds the market panel from quotes in the order given.
func Market(quotes []market.Quote) MarketPage {
	var page MarketPage
	groups := map[string]int{}
	for _, q := range quotes {
		idx, ok := groups[q.Category]
		if !ok {
			idx = len(page.Treemap)
			groups[q.Category] = idx
			page.Treemap = append(page.Treemap, Node{ID: q.Category, Label: q.Category})
		}
		page.Treemap[idx].Value += q.Price
		page.Treemap = append(page.Treemap, Node{
			ID:     q.Category + "/" + q.Name,
			Parent: q.Category,
			Label:  q.Name,
			Value:  q.Price,
			Color:  q.ChangePct,
			Text:   Decimal(q.Price, 2) + " · " + SignedPercent(q.ChangePct),
		})
		page.Rows = append(page.Rows, MarketRow{
			Name:     q.Name,
			Symbol:   q.Symbol,
			Category: q.Category,
			Price:    Decimal(q.Price, 2),
			Change:   SignedPercent(q.ChangePct),
			Up:       q.ChangePct >= 0,
		})
	}
	return page
}
