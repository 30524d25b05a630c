// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package present maps ranked rows to the structures the dashboard renders:
// a treemap node list and a flat leaderboard. It only formats; every number
// it shows was computed upstream.
package present

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/rank"
	"github.com/davetashner/sheetboard/internal/record"
)

// RootLabel is the synthetic group used when categories are merged.
const RootLabel = "All"

// Node is one treemap rectangle. Leaves have a non-empty Parent; group nodes
// have Parent "" and a Value equal to the sum of their leaves.
type Node struct {
	ID     string  `json:"id"`
	Parent string  `json:"parent"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Color  float64 `json:"color"`
	Text   string  `json:"text,omitempty"`
}

// Stat is a secondary labeled number on a leaderboard row.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Detail is one section of a row's expandable detail box.
type Detail struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Row is one leaderboard entry, fully formatted.
type Row struct {
	Rank        int      `json:"rank"`
	Marker      string   `json:"marker"`
	Identity    string   `json:"identity"`
	Handle      string   `json:"handle"`
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	Share       string   `json:"share"`
	Metric      string   `json:"metric"`
	MetricValue float64  `json:"metric_value"`
	Stats       []Stat   `json:"stats,omitempty"`
	Details     []Detail `json:"details,omitempty"`
	ProfileURL  string   `json:"profile_url,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
}

// Summary holds the headline cards above a view.
type Summary struct {
	Count      int    `json:"count"`
	Total      string `json:"total"`
	TotalLabel string `json:"total_label"`
	Top        string `json:"top"`
}

// Page is everything needed to render one view.
type Page struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	MetricLabel string   `json:"metric_label"`
	Category    string   `json:"category"`
	Categories  []string `json:"categories"`
	Merged      bool     `json:"merged"`
	Summary     Summary  `json:"summary"`
	Treemap     []Node   `json:"treemap"`
	Rows        []Row    `json:"rows"`
}

// Options controls presentation choices that do not affect computation.
type Options struct {
	Merge bool // Collapse every category into one root group.
	Limit int  // Max leaderboard rows; 0 means all.
}

// Build assembles a Page from a pipeline result.
func Build(res *pipeline.Result, opts Options) Page {
	v := res.View
	merge := opts.Merge && res.Category == ""
	p := Page{
		Name:       v.Name,
		Title:      v.Title,
		Category:   res.Category,
		Categories: res.Categories,
		Merged:     merge,
		Summary:    Summarize(res),
		Treemap:    Treemap(res.Rows, v, merge),
		Rows:       List(rank.Top(res.Rows, opts.Limit), v),
	}
	if p.Title == "" {
		p.Title = Label(v.Name)
	}
	p.MetricLabel = metricLabel(v)
	return p
}

func metricLabel(v pipeline.View) string {
	if v.MetricLabel != "" {
		return v.MetricLabel
	}
	return Label(v.Columns.Metric)
}

// Summarize returns the headline numbers of a result. Composite scores do
// not add up to anything readable, so those views total their second raw
// metric instead.
func Summarize(res *pipeline.Result) Summary {
	s := Summary{Count: len(res.Rows), Top: Placeholder}
	if c := res.View.Composite; c != nil {
		var sum float64
		for _, r := range res.Rows {
			sum += r.Value(c.B)
		}
		s.Total = Count(sum)
		s.TotalLabel = Label(c.B)
	} else {
		s.Total = metricText(res.View, res.Total)
		s.TotalLabel = metricLabel(res.View)
	}
	if top, ok := res.Top(); ok {
		s.Top = top.DisplayName
	}
	return s
}

// Treemap builds group and leaf nodes with path [group, label].
func Treemap(rows []record.RankedRow, v pipeline.View, merge bool) []Node {
	if len(rows) == 0 {
		return nil
	}
	groupOf := func(r record.RankedRow) string {
		if merge {
			return RootLabel
		}
		return r.Category
	}

	totals := make(map[string]float64)
	var order []string
	for _, r := range rows {
		g := groupOf(r)
		if _, ok := totals[g]; !ok {
			order = append(order, g)
		}
		totals[g] += r.Metric
	}
	sort.SliceStable(order, func(i, j int) bool { return totals[order[i]] > totals[order[j]] })

	nodes := make([]Node, 0, len(order)+len(rows))
	for _, g := range order {
		nodes = append(nodes, Node{ID: g, Label: g, Value: totals[g]})
	}
	for _, r := range rows {
		g := groupOf(r)
		nodes = append(nodes, Node{
			ID:     g + "/" + r.Identity + "#" + fmt.Sprint(r.Rank),
			Parent: g,
			Label:  r.DisplayName,
			Value:  r.Metric,
			Color:  r.ColorValue,
			Text:   metricText(v, r.Metric) + " · " + Percent(r.SharePct),
		})
	}
	return nodes
}

// List formats ranked rows for the leaderboard.
func List(rows []record.RankedRow, v pipeline.View) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{
			Rank:        r.Rank,
			Marker:      rank.Marker(r.Rank),
			Identity:    r.Identity,
			Handle:      handle(v, r.Identity),
			DisplayName: r.DisplayName,
			Category:    r.Category,
			Share:       Percent(r.SharePct),
			Metric:      metricText(v, r.Metric),
			MetricValue: r.Metric,
			Stats:       stats(r.Record),
			Details:     details(r.Record, v),
			ProfileURL:  urlFor(v, v.ProfileURL, r.Identity),
			AvatarURL:   urlFor(v, v.AvatarURL, r.Identity),
		}
	}
	return out
}

func metricText(v pipeline.View, m float64) string {
	if v.Composite != nil {
		return Decimal(m, 3)
	}
	if v.Unit != "" {
		return Money(v.Unit, m)
	}
	return Count(m)
}

// handle shows the identity with the view's tag exactly once, whether or not
// the sheet already carries it.
func handle(v pipeline.View, id string) string {
	if id == "" {
		return ""
	}
	return v.IdentityTag + strings.TrimPrefix(id, v.IdentityTag)
}

func urlFor(v pipeline.View, pattern, id string) string {
	id = strings.TrimPrefix(id, v.IdentityTag)
	if pattern == "" || id == "" {
		return ""
	}
	return fmt.Sprintf(pattern, url.PathEscape(id))
}

// stats lists secondary and joined metrics in name order.
func stats(r record.Record) []Stat {
	names := make([]string, 0, len(r.Secondary)+len(r.Enriched))
	for k := range r.Secondary {
		names = append(names, k)
	}
	for k := range r.Enriched {
		if _, dup := r.Secondary[k]; !dup {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	out := make([]Stat, 0, len(names))
	for _, n := range names {
		out = append(out, Stat{Label: Label(n), Value: Count(r.Value(n))})
	}
	return out
}

// details returns non-empty annotations in column order, or the view's
// fallback text when every annotation is blank.
func details(r record.Record, v pipeline.View) []Detail {
	var out []Detail
	for _, col := range v.Columns.Annotations {
		if text := r.Annotation(col); text != "" {
			out = append(out, Detail{Label: Label(col), Text: text})
		}
	}
	if len(out) == 0 && v.EmptyDetail != "" {
		label := v.DetailLabel
		if label == "" {
			label = "Details"
		}
		out = append(out, Detail{Label: label, Text: v.EmptyDetail})
	}
	return out
}
