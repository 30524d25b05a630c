// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/sheetboard/internal/present"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes a page as a Markdown leaderboard.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes a heading, a summary line, and the ranked table.
func (m *MarkdownFormatter) Format(page present.Page, w io.Writer) error {
	title := page.Title
	if page.Category != "" {
		title += " · " + page.Category
	}
	if _, err := fmt.Fprintf(w, "# %s\n\n", escapeCell(title)); err != nil {
		return err
	}
	if len(page.Rows) == 0 {
		_, err := fmt.Fprintln(w, "_No entries to show._")
		return err
	}

	if _, err := fmt.Fprintf(w, "**%d** entries · total **%s** · top **%s**\n\n",
		page.Summary.Count, page.Summary.Total, escapeCell(page.Summary.Top)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "| # | Name | Category | %s | Share |\n|---:|---|---|---:|---:|\n",
		escapeCell(page.MetricLabel)); err != nil {
		return err
	}
	for _, r := range page.Rows {
		name := escapeCell(r.DisplayName)
		if r.Handle != "" {
			name += " (" + escapeCell(r.Handle) + ")"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			r.Marker, name, escapeCell(r.Category), r.Metric, r.Share); err != nil {
			return err
		}
	}
	return nil
}

// escapeCell keeps user text from breaking table cells.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
