// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package present

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Placeholder is rendered in place of a value that cannot be formatted.
const Placeholder = "-"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Count formats v as an integer with thousands separators.
func Count(v float64) string {
	if !finite(v) || math.Abs(v) > math.MaxInt64/2 {
		return Placeholder
	}
	return humanize.Comma(int64(math.Round(v)))
}

// Money formats v as a whole amount prefixed with unit.
func Money(unit string, v float64) string {
	s := Count(v)
	if s == Placeholder {
		return s
	}
	return unit + s
}

// Percent formats v with one decimal and a percent sign.
func Percent(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Decimal formats v with thousands separators and up to digits decimals.
func Decimal(v float64, digits int) string {
	if !finite(v) {
		return Placeholder
	}
	return humanize.CommafWithDigits(v, digits)
}

// SignedPercent formats a change with an arrow: "▲ 1.23%" or "▼ 0.50%".
func SignedPercent(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	arrow := "▲"
	if v < 0 {
		arrow = "▼"
	}
	return fmt.Sprintf("%s %.2f%%", arrow, math.Abs(v))
}

// Label turns a column name like "recent_interest" into "Recent interest".
func Label(column string) string {
	s := strings.TrimSpace(strings.ReplaceAll(column, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
