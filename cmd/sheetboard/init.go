// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/source"
)

// Init-specific flag values.
var (
	initForce  bool
	initKind   string
	initNoData bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config and sample sheets",
	Long: `Create .sheetboard.yaml in the project directory (see --dir) and fill the
sheet store with small sample sheets for every page.

This command is non-destructive by default: it skips the config file and any
sheet that already exists. Use --force to overwrite them.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config and sheets")
	initCmd.Flags().StringVar(&initKind, "kind", source.KindCSV, "sheet store kind ("+source.KindCSV+" or "+source.KindSQLite+")")
	initCmd.Flags().BoolVar(&initNoData, "no-data", false, "write the config only")
}

// starterConfig is the config written by init for the given store kind.
func starterConfig(kind string) *config.Config {
	loc := config.DefaultLocation
	if kind == source.KindSQLite {
		loc = "sheetboard.db"
	}
	return &config.Config{
		Source:       config.SourceConfig{Kind: kind, Location: loc},
		Listen:       config.DefaultListen,
		CacheTTL:     config.DefaultCacheTTL.String(),
		Refresh:      "*/30 * * * *",
		OutputFormat: config.DefaultFormat,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	if initKind != source.KindCSV && initKind != source.KindSQLite {
		return exitError(ExitInvalidArgs, "sheetboard: --kind must be %s or %s (got %q)", source.KindCSV, source.KindSQLite, initKind)
	}
	if err := cmdFS.MkdirAll(configDir, 0o750); err != nil {
		return exitError(ExitInvalidArgs, "sheetboard: cannot create %s: %v", configDir, err)
	}

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	cfg := starterConfig(initKind)
	cfgPath := filepath.Join(configDir, config.FileName)
	_, statErr := cmdFS.Stat(cfgPath)
	switch {
	case statErr == nil && !initForce:
		_, _ = dim.Fprintf(w, "  skip   %s (exists)\n", cfgPath)
		existing, err := config.LoadFile(cfgPath)
		if err != nil {
			return exitError(ExitInvalidArgs, "sheetboard: %v", err)
		}
		cfg = config.Resolve(existing)
	case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
		return exitError(ExitInvalidArgs, "sheetboard: %v", statErr)
	default:
		var buf bytes.Buffer
		if err := config.Write(&buf, cfg); err != nil {
			return err
		}
		if err := cmdFS.WriteFile(cfgPath, buf.Bytes(), 0o600); err != nil {
			return exitError(ExitInvalidArgs, "sheetboard: cannot write %s: %v", cfgPath, err)
		}
		_, _ = green.Fprintf(w, "  wrote  %s\n", cfgPath)
	}

	if initNoData {
		return nil
	}

	loc := sourceLocation(cfg)
	if cfg.Source.Kind == source.KindCSV || cfg.Source.Kind == "" {
		if err := cmdFS.MkdirAll(loc, 0o750); err != nil {
			return exitError(ExitUnavailable, "sheetboard: cannot create %s: %v", loc, err)
		}
	}
	src, closer, err := source.Open(cfg.Source.Kind, loc)
	if err != nil {
		return unavailable(err)
	}
	defer func() { _ = closer.Close() }()

	sheets := sampleSheets()
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx := cmd.Context()
	for _, name := range names {
		if !initForce {
			if _, err := src.Read(ctx, name); err == nil {
				_, _ = dim.Fprintf(w, "  skip   sheet %s (exists)\n", name)
				continue
			}
		}
		if err := src.Write(ctx, name, sheets[name]); err != nil {
			return unavailable(fmt.Errorf("write sample %s: %w", name, err))
		}
		_, _ = green.Fprintf(w, "  wrote  sheet %s\n", name)
	}
	slog.Debug("sample sheets written", "kind", cfg.Source.Kind, "location", loc)

	_, _ = fmt.Fprintf(w, "\nNext: sheetboard serve --dir %s\n", configDir)
	return nil
}
