// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davetashner/sheetboard/internal/admin"
	"github.com/davetashner/sheetboard/internal/config"
	"github.com/davetashner/sheetboard/internal/schedule"
	"github.com/davetashner/sheetboard/internal/server"
	"github.com/davetashner/sheetboard/internal/visitor"
)

// Serve-specific flag values.
var (
	serveListen   string
	serveRefresh  string
	serveNoMarket bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve every view, the market board, the events list, and the admin grid
over HTTP. Sheets are cached for cache_ttl; the Sync button or a refresh
schedule drops the cache.

The admin grid is enabled only when SHEETBOARD_ADMIN_PASSWORD (or
admin_password in the config) is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "address to listen on (default 127.0.0.1:8501)")
	serveCmd.Flags().StringVar(&serveRefresh, "refresh", "", "cron spec that clears the sheet cache (e.g. \"*/15 * * * *\")")
	serveCmd.Flags().BoolVar(&serveNoMarket, "no-market", false, "disable the market board")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(&config.Config{
		Listen:  serveListen,
		Refresh: serveRefresh,
		Market:  config.MarketConfig{Disabled: serveNoMarket},
	})
	if err != nil {
		return err
	}

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	loc := visitor.LoadLocation(cfg.Timezone)
	secret := admin.Secret(cfg.AdminPassword)
	if secret == "" {
		slog.Info("admin grid disabled", "hint", "set "+admin.EnvPassword)
	}

	srv := server.New(server.Options{
		Source:      b.cached,
		Views:       config.Views(cfg),
		Market:      marketBoard(cfg),
		Visitors:    visitor.NewCounter(b.cached, loc),
		AdminSecret: secret,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Refresh != "" {
		sched, err := schedule.New(cfg.Refresh, loc, schedule.Job{Name: "sync", Run: srv.Sync})
		if err != nil {
			return exitError(ExitInvalidArgs, "sheetboard: refresh: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		slog.Info("scheduled refresh", "spec", sched.Spec(), "next", sched.Next())
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sheetboard serving on http://%s\n", cfg.Listen)
	return srv.ListenAndServe(ctx, cfg.Listen)
}
