// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package server serves the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/davetashner/sheetboard/internal/events"
	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/source"
	"github.com/davetashner/sheetboard/internal/visitor"
)

// Options configures a Server.
type Options struct {
	Source      source.Source
	Views       map[string]pipeline.View
	Market      *market.Board    // nil disables the market page
	Visitors    *visitor.Counter // nil hides the visitor widget
	AdminSecret string           // empty disables admin
	EventsTTL   time.Duration    // staleness window for the events sheet
	DefaultView string           // target of "/"; the first view by name when empty
}

// clearer is implemented by caching sources.
type clearer interface {
	Clear()
}

// Server holds the dashboard handlers and their dependencies.
type Server struct {
	opts Options
	mux  *http.ServeMux

	mu       sync.Mutex
	sessions map[string]time.Time
}

// New builds a Server and registers its routes.
func New(opts Options) *Server {
	if opts.DefaultView == "" {
		if names := pipeline.ViewNames(opts.Views); len(names) > 0 {
			opts.DefaultView = names[0]
		}
	}
	if opts.EventsTTL == 0 {
		opts.EventsTTL = events.DefaultTTL
	}
	s := &Server{opts: opts, mux: http.NewServeMux(), sessions: make(map[string]time.Time)}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /view/{name}", s.handleView)
	s.mux.HandleFunc("GET /market", s.handleMarket)
	s.mux.HandleFunc("GET /events", s.handleEvents)
	s.mux.HandleFunc("POST /sync", s.handleSync)

	s.mux.HandleFunc("GET /admin", s.handleAdmin)
	s.mux.HandleFunc("POST /admin/login", s.handleLogin)
	s.mux.HandleFunc("GET /admin/logout", s.handleLogout)
	s.mux.HandleFunc("POST /admin/save", s.handleSave)

	s.mux.HandleFunc("GET /api/view/{name}", s.handleAPIView)
	s.mux.HandleFunc("GET /api/market", s.handleAPIMarket)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
}

// Handler returns the root handler with visitor tracking and request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(visitor.Middleware(s.mux))
}

// Sync drops every cached sheet and quote.
func (s *Server) Sync() {
	if c, ok := s.opts.Source.(clearer); ok {
		c.Clear()
	}
	if s.opts.Market != nil {
		s.opts.Market.Clear()
	}
	slog.Info("caches cleared")
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
