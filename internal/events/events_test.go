// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/source"
)

func eventsTable() *record.Table {
	t := record.NewTable("event_name", "prizes", "deadline", "announce_date", "link")
	t.Append(record.Row{"event_name": "Airdrop", "prizes": "100 USDT", "deadline": "2026-01-10",
		"announce_date": "2026-01-12", "link": "https://t.me/x"})
	t.Append(record.Row{"event_name": " Quiz ", "prizes": "nan", "deadline": "", "link": "https://t.me/y"})
	return t
}

func TestLoad(t *testing.T) {
	src := source.NewMemory(map[string]*record.Table{Sheet: eventsTable()})

	evs, err := Load(context.Background(), src, DefaultTTL)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "Airdrop", evs[0].Name)
	assert.Equal(t, "100 USDT", evs[0].Prizes)
	assert.Equal(t, "Quiz", evs[1].Name)
	assert.Equal(t, "", evs[1].Prizes)
	assert.Equal(t, "", evs[1].AnnounceDate)
}

func TestParse_MissingColumns(t *testing.T) {
	tbl := record.NewTable("event_name", "link")
	tbl.Append(record.Row{"event_name": "A", "link": "x"})

	_, err := Parse(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumns))
	assert.Contains(t, err.Error(), "prizes, deadline, announce_date")
}

func TestParse_Empty(t *testing.T) {
	evs, err := Parse(record.NewTable("event_name"))
	require.NoError(t, err)
	assert.Empty(t, evs)

	evs, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestLoad_SourceUnavailable(t *testing.T) {
	src := source.NewMemory(nil)
	_, err := Load(context.Background(), src, DefaultTTL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrSourceUnavailable))
}
