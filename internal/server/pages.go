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

	"github.com/davetashner/sheetboard/internal/events"
	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/pipeline"
	"github.com/davetashner/sheetboard/internal/present"
	"github.com/davetashner/sheetboard/internal/redact"
)

// document starts a page with navigation and the visitor widget filled in.
func (s *Server) document(r *http.Request, title, active string) output.Document {
	doc := output.Document{Title: title, Active: active}
	for _, name := range pipeline.ViewNames(s.opts.Views) {
		doc.Nav = append(doc.Nav, output.NavLink{
			Name: name, Label: navLabel(s.opts.Views[name]), Href: "/view/" + name,
		})
	}
	if s.opts.Market != nil {
		doc.Nav = append(doc.Nav, output.NavLink{Name: "market", Label: "Market", Href: "/market"})
	}
	doc.Nav = append(doc.Nav,
		output.NavLink{Name: "events", Label: "Events", Href: "/events"},
		output.NavLink{Name: "admin", Label: "Admin", Href: "/admin"},
	)
	if s.opts.Visitors != nil {
		c := s.opts.Visitors.Visit(r.Context())
		doc.Visitors = &output.VisitorBox{
			Total: present.Count(float64(c.Total)),
			Today: present.Count(float64(c.Today)),
		}
	}
	return doc
}

func navLabel(v pipeline.View) string {
	if v.Title != "" {
		return v.Title
	}
	return present.Label(v.Name)
}

// render buffers the page so a template failure yields a clean 500.
func render(w http.ResponseWriter, status int, name string, doc output.Document) {
	var buf bytes.Buffer
	if err := output.RenderDocument(&buf, name, doc); err != nil {
		slog.Error("render page", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func truthy(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.opts.DefaultView == "" {
		http.Redirect(w, r, "/events", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/view/"+s.opts.DefaultView, http.StatusFound)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	v, ok := s.opts.Views[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))

	doc := s.document(r, navLabel(v), name)
	doc.Expand = truthy(q.Get("expand"))

	res, err := pipeline.Run(r.Context(), s.opts.Source, v, pipeline.Filter{Category: category})
	if err != nil {
		slog.Warn("view unavailable", "view", name, "error", redact.String(err.Error()))
		doc.Error = "Could not load the sheet. Try again later or press Sync."
		render(w, http.StatusOK, output.TemplateView, doc)
		return
	}
	if res.JoinErr != nil {
		doc.Notice = "Some linked data could not be loaded; affected values show as zero."
	}
	page := present.Build(res, present.Options{Merge: truthy(q.Get("merge"))})
	doc.Page = &page
	render(w, http.StatusOK, output.TemplateView, doc)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	if s.opts.Market == nil {
		http.NotFound(w, r)
		return
	}
	doc := s.document(r, "Market", "market")
	page := present.Market(s.opts.Market.Quotes(r.Context()))
	doc.Market = &page
	render(w, http.StatusOK, output.TemplateMarket, doc)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	doc := s.document(r, "Events", "events")
	evs, err := events.Load(r.Context(), s.opts.Source, s.opts.EventsTTL)
	switch {
	case errors.Is(err, events.ErrMissingColumns):
		doc.Error = "The events sheet header is wrong. Required columns: " + strings.Join(events.RequiredColumns, ", ")
	case err != nil:
		slog.Warn("events unavailable", "error", redact.String(err.Error()))
		doc.Error = "Could not load the events list."
	}
	doc.Events = evs
	render(w, http.StatusOK, output.TemplateEvents, doc)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	s.Sync()
	back := "/"
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := r.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) {
			back = u.RequestURI()
		}
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
