// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strings"

	"github.com/fatih/color"
)

// Shared color printers for terminal output.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// ColorMarker highlights podium ranks.
func ColorMarker(val string) string {
	switch val {
	case "🥇", "🥈", "🥉":
		return colorYellow.Sprint(val)
	default:
		return colorFaint.Sprint(val)
	}
}

// ColorChange colors a signed change: rises green, falls red.
func ColorChange(val string) string {
	switch {
	case strings.HasPrefix(val, "▲"):
		return colorGreen.Sprint(val)
	case strings.HasPrefix(val, "▼"):
		return colorRed.Sprint(val)
	default:
		return val
	}
}

// ColorCategory renders a category label.
func ColorCategory(val string) string {
	return colorCyan.Sprint(val)
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
