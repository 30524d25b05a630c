// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"io"

	"github.com/davetashner/sheetboard/internal/present"
	"github.com/davetashner/sheetboard/internal/report"
)

func init() {
	RegisterFormatter(tableFormatter{})
}

// tableFormatter writes the aligned terminal leaderboard.
type tableFormatter struct{}

func (tableFormatter) Name() string { return "table" }

func (tableFormatter) Format(page present.Page, w io.Writer) error {
	return report.Leaderboard(w, page)
}
