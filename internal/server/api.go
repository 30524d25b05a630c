// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/davetashner/sheetboard/internal/market"
	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/present"
	"github.com/davetashner/sheetboard/internal/redact"
	"github.com/davetashner/sheetboard/internal/source"
)

// apiError is the body of every non-2xx API response.
type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := output.WriteJSON(&buf, v, true); err != nil {
		slog.Error("encode json", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	v, ok := s.opts.Views[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Error: pipeline.ErrUnknownView.Error() + ": " + name})
		return
	}
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	res, err := pipeline.Run(r.Context(), s.opts.Source, v, pipeline.Filter{Category: strings.TrimSpace(q.Get("category"))})
	if err != nil {
		msg := redact.String(err.Error())
		slog.Warn("api view unavailable", "view", name, "error", msg)
		status := http.StatusInternalServerError
		if errors.Is(err, source.ErrSourceUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, apiError{Error: msg})
		return
	}
	page := present.Build(res, present.Options{Merge: truthy(q.Get("merge")), Limit: limit})
	writeJSON(w, http.StatusOK, output.JSONEnvelope{
		View: page,
		Metadata: output.JSONMetadata{
			Count:       len(page.Rows),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleAPIMarket(w http.ResponseWriter, r *http.Request) {
	if s.opts.Market == nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "market board disabled"})
		return
	}
	quotes := s.opts.Market.Quotes(r.Context())
	if quotes == nil {
		quotes = []market.Quote{}
	}
	writeJSON(w, http.StatusOK, quotes)
}
