// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"sort"
	"time"

	"github.com/davetashner/sheetboard/internal/join"
	"github.com/davetashner/sheetboard/internal/normalize"
	"github.com/davetashner/sheetboard/internal/score"
)

// UseSourceTTL tells Run to read with the source's default staleness window.
const UseSourceTTL time.Duration = -1

// View parameterizes one dashboard page: which sheet to read, which column is
// the primary metric, how to group, join, and score.
type View struct {
	Name  string
	Title string
	Sheet string

	Columns normalize.Columns

	// Composite, when set, replaces the primary metric with a weighted score.
	Composite *Composite

	// Join, when set, enriches records from a second sheet.
	Join *Join

	Color        score.ColorMode
	LogThreshold float64

	// TTL overrides the source staleness window for this view.
	TTL time.Duration

	// Presentation hints.
	Unit        string // Prefix for metric values, e.g. "$".
	MetricLabel string
	DetailLabel string
	EmptyDetail string
	IdentityTag string // Prefix shown before the identity, e.g. "@".
	ProfileURL  string // fmt pattern taking the identity.
	AvatarURL   string // fmt pattern taking the identity.
}

// Composite configures a two-metric mindshare score.
type Composite struct {
	A       string // Column of the first metric (mentions).
	B       string // Column of the second metric (views).
	Weights score.Weights
}

// Join configures a left join against another sheet.
type Join struct {
	Sheet   string
	Columns normalize.Columns
	Fields  []join.Field
	Key     join.KeyFunc
}

// Filter narrows a run to one category. An empty Category means all.
type Filter struct {
	Category string
}

// DefaultViews returns the built-in views keyed by name.
func DefaultViews() map[string]View {
	followerCols := normalize.Columns{
		Identity:    "handle",
		Name:        "name",
		Metric:      "followers",
		Category:    "category",
		Annotations: []string{"recent_interest", "note", "bio"},
	}

	return map[string]View{
		"followers": {
			Name:        "followers",
			Title:       "Follower Map",
			Sheet:       "followers",
			Columns:     followerCols,
			Color:       score.ColorLog,
			TTL:         UseSourceTTL,
			MetricLabel: "Followers",
			DetailLabel: "Profile bio",
			EmptyDetail: "No bio available.",
			IdentityTag: "@",
			ProfileURL:  "https://twitter.com/%s",
			AvatarURL:   "https://unavatar.io/twitter/%s",
		},
		"payouts": {
			Name:  "payouts",
			Title: "Weekly Payout",
			Sheet: "payouts",
			Columns: normalize.Columns{
				Identity:    "handle",
				Name:        "name",
				Metric:      "payout_amount",
				Category:    "category",
				Annotations: []string{"bio"},
			},
			Join: &Join{
				Sheet:   "followers",
				Columns: followerCols,
				Fields:  []join.Field{{As: "followers"}},
			},
			Color:       score.ColorRaw,
			TTL:         30 * time.Minute,
			Unit:        "$",
			MetricLabel: "Payout",
			DetailLabel: "Payout info",
			EmptyDetail: "No payout details.",
			IdentityTag: "@",
			ProfileURL:  "https://twitter.com/%s",
			AvatarURL:   "https://unavatar.io/twitter/%s",
		},
		"projects": {
			Name:  "projects",
			Title: "Crypto Projects",
			Sheet: "projects",
			Columns: normalize.Columns{
				Identity:    "ticker",
				Name:        "name",
				Metric:      "value",
				Category:    "category",
				Annotations: []string{"desc"},
			},
			Color:       score.ColorLog,
			TTL:         30 * time.Minute,
			MetricLabel: "Value",
			DetailLabel: "Project info",
			EmptyDetail: "No description.",
			IdentityTag: "$",
			AvatarURL:   "https://unavatar.io/twitter/%s",
		},
		"mindshare": {
			Name:  "mindshare",
			Title: "Crypto Mindshare",
			Sheet: "mindshare",
			Columns: normalize.Columns{
				Identity:    "handle",
				Name:        "name",
				Secondary:   []string{"mentions", "views"},
				Category:    "category",
				Annotations: []string{"note"},
			},
			Composite: &Composite{
				A:       "mentions",
				B:       "views",
				Weights: score.DefaultWeights,
			},
			Color:       score.ColorRaw,
			TTL:         30 * time.Minute,
			MetricLabel: "Score",
			DetailLabel: "Notes",
			EmptyDetail: "No notes.",
			IdentityTag: "@",
			ProfileURL:  "https://twitter.com/%s",
			AvatarURL:   "https://unavatar.io/twitter/%s",
		},
	}
}

// ViewNames returns the names of views in sorted order.
func ViewNames(views map[string]View) []string {
	names := make([]string, 0, len(views))
	for n := range views {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
