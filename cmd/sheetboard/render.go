// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/present"
	"github.com/davetashner/sheetboard/internal/source"
)

// Render-specific flag values.
var (
	renderFormat   string
	renderCategory string
	renderLimit    int
	renderMerge    bool
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render <view>",
	Short: "Render one view to the terminal or a file",
	Long: `Rank the rows of one view and write the result as an aligned table,
JSON, Markdown, or a self-contained HTML page.

Views: followers, payouts, projects, mindshare.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format ("+strings.Join(output.FormatNames(), ", ")+")")
	renderCmd.Flags().StringVar(&renderCategory, "category", "", "only rank rows in this category")
	renderCmd.Flags().IntVarP(&renderLimit, "limit", "n", 0, "max leaderboard rows (0 = all)")
	renderCmd.Flags().BoolVar(&renderMerge, "merge", false, "collapse every category into one treemap group")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file path (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(&config.Config{OutputFormat: renderFormat})
	if err != nil {
		return err
	}
	if renderLimit < 0 {
		return exitError(ExitInvalidArgs, "sheetboard: --limit must be non-negative (got %d)", renderLimit)
	}
	f, err := output.GetFormatter(cfg.OutputFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "sheetboard: %v", err)
	}

	views := config.Views(cfg)
	v, ok := views[args[0]]
	if !ok {
		return exitError(ExitInvalidArgs, "sheetboard: %v %q (available: %s)",
			pipeline.ErrUnknownView, args[0], strings.Join(pipeline.ViewNames(views), ", "))
	}

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	res, err := pipeline.Run(cmd.Context(), b.cached, v, pipeline.Filter{Category: renderCategory})
	if err != nil {
		if errors.Is(err, source.ErrSourceUnavailable) {
			return unavailable(err)
		}
		return err
	}
	if res.JoinErr != nil {
		slog.Warn("joined values default to zero", "view", v.Name, "error", res.JoinErr)
	}
	page := present.Build(res, present.Options{Merge: renderMerge, Limit: renderLimit})

	if renderOutput == "" {
		return f.Format(page, cmd.OutOrStdout())
	}
	var buf bytes.Buffer
	if err := f.Format(page, &buf); err != nil {
		return err
	}
	if err := cmdFS.MkdirAll(filepath.Dir(renderOutput), 0o750); err != nil {
		return exitError(ExitInvalidArgs, "sheetboard: cannot create output dir: %v", err)
	}
	if err := cmdFS.WriteFile(renderOutput, buf.Bytes(), 0o600); err != nil {
		return exitError(ExitInvalidArgs, "sheetboard: cannot write output: %v", err)
	}
	slog.Info("view rendered", "view", v.Name, "format", f.Name(), "rows", len(page.Rows), "path", renderOutput)
	return nil
}
