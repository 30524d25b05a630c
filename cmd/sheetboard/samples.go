// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/davetashner/sheetboard/internal/events"
	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/visitor"
)

// sampleSheets returns small demo sheets for every built-in page.
func sampleSheets() map[string]*record.Table {
	followers := record.NewTable("handle", "name", "followers", "category", "recent_interest", "note", "bio")
	followers.Append(record.Row{"handle": "@vitalik", "name": "Vitalik", "followers": "5,400,000", "category": "Crypto", "recent_interest": "L2 scaling", "bio": "Ethereum researcher"})
	followers.Append(record.Row{"handle": "@karpathy", "name": "Andrej", "followers": "1,100,000", "category": "AI", "recent_interest": "LLM training", "note": "Frequent threads"})
	followers.Append(record.Row{"handle": "@hayden", "name": "Hayden", "followers": "280,000", "category": "Crypto", "bio": "Uniswap"})
	followers.Append(record.Row{"handle": "@simonw", "name": "Simon", "followers": "95,000", "category": "AI"})
	followers.Append(record.Row{"handle": "@newbie", "name": "Newbie", "followers": "0", "category": "AI", "note": "Hidden until the first follower"})

	payouts := record.NewTable("handle", "name", "payout_amount", "category", "bio")
	payouts.Append(record.Row{"handle": "vitalik", "name": "Vitalik", "payout_amount": "$1,250", "category": "Crypto", "bio": "Week 12 winner"})
	payouts.Append(record.Row{"handle": "@simonw", "name": "Simon", "payout_amount": "$640.50", "category": "AI"})
	payouts.Append(record.Row{"handle": "@unknown", "name": "Guest", "payout_amount": "$80", "category": "AI"})

	projects := record.NewTable("ticker", "name", "value", "category", "desc")
	projects.Append(record.Row{"ticker": "$ETH", "name": "Ethereum", "value": "420", "category": "L1", "desc": "Smart contract platform"})
	projects.Append(record.Row{"ticker": "$SOL", "name": "Solana", "value": "310", "category": "L1"})
	projects.Append(record.Row{"ticker": "$ARB", "name": "Arbitrum", "value": "75", "category": "L2", "desc": "Optimistic rollup"})

	mindshare := record.NewTable("handle", "name", "mentions", "views", "category", "note")
	mindshare.Append(record.Row{"handle": "@eth", "name": "Ethereum", "mentions": "1,200", "views": "3,400,000", "category": "L1"})
	mindshare.Append(record.Row{"handle": "@solana", "name": "Solana", "mentions": "900", "views": "4,100,000", "category": "L1"})
	mindshare.Append(record.Row{"handle": "@base", "name": "Base", "mentions": "450", "views": "600,000", "category": "L2", "note": "Rising"})

	evs := record.NewTable(events.RequiredColumns...)
	evs.Append(record.Row{"event_name": "Spring Writing Quest", "prizes": "$500 pool", "deadline": "2026-04-01", "announce_date": "2026-04-10", "link": "https://example.com/quest"})
	evs.Append(record.Row{"event_name": "Meme Contest", "prizes": "NFT badges", "deadline": "2026-05-15", "announce_date": "", "link": ""})

	return map[string]*record.Table{
		"followers":   followers,
		"payouts":     payouts,
		"projects":    projects,
		"mindshare":   mindshare,
		events.Sheet:  evs,
		visitor.Sheet: visitor.Seed(),
	}
}
