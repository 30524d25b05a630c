// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/sheetboard/internal/admin"
	"github.com/davetashner/sheetboard/internal/events"
	"github.com/davetashner/sheetboard/internal/output"
	"github.com/davetashner/sheetboard/internal/record"
	"github.com/davetashner/sheetboard/internal/redact"
	"github.com/davetashner/sheetboard/internal/source"
	"github.com/davetashner/sheetboard/internal/visitor"
)

// AdminCookie names the admin session cookie.
const AdminCookie = "sheetboard_admin"

// SessionTTL bounds how long an admin login stays valid.
const SessionTTL = 12 * time.Hour

// Blank rows and columns appended to the grid for new entries.
const (
	spareRows = 3
	spareCols = 1
)

func (s *Server) adminEnabled() bool { return s.opts.AdminSecret != "" }

func (s *Server) authed(r *http.Request) bool {
	c, err := r.Cookie(AdminCookie)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.sessions[c.Value]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(s.sessions, c.Value)
		return false
	}
	return true
}

// sheets lists editable sheets: whatever the store reports, plus every
// sheet the dashboard reads.
func (s *Server) sheets(ctx context.Context) []string {
	set := map[string]bool{events.Sheet: true, visitor.Sheet: true}
	for _, v := range s.opts.Views {
		set[v.Sheet] = true
		if v.Join != nil {
			set[v.Join.Sheet] = true
		}
	}
	if l, ok := s.opts.Source.(source.Sheets); ok {
		names, err := l.Sheets(ctx)
		if err != nil {
			slog.Warn("list sheets", "error", err)
		}
		for _, n := range names {
			set[n] = true
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s *Server) adminDocument(r *http.Request) output.Document {
	doc := s.document(r, "Admin", "admin")
	doc.Admin = &output.AdminGrid{Enabled: s.adminEnabled(), Authed: s.adminEnabled() && s.authed(r)}
	return doc
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	doc := s.adminDocument(r)
	if !doc.Admin.Authed {
		render(w, http.StatusOK, output.TemplateAdmin, doc)
		return
	}

	doc.Admin.Sheets = s.sheets(r.Context())
	sheet := r.URL.Query().Get("sheet")
	if sheet == "" && len(doc.Admin.Sheets) > 0 {
		sheet = doc.Admin.Sheets[0]
	}
	if !source.ValidSheetName(sheet) {
		doc.Error = "Invalid sheet name."
		render(w, http.StatusBadRequest, output.TemplateAdmin, doc)
		return
	}
	doc.Admin.Sheet = sheet
	if truthy(r.URL.Query().Get("saved")) {
		doc.Notice = "Saved " + sheet + "."
	}

	t, err := source.ReadWithin(r.Context(), s.opts.Source, sheet, 0)
	if err != nil {
		slog.Warn("admin read", "sheet", sheet, "error", redact.String(err.Error()))
		doc.Notice = "Sheet " + sheet + " could not be read; saving creates it."
		t = record.NewTable()
	}
	doc.Admin.Columns, doc.Admin.Rows = grid(t)
	render(w, http.StatusOK, output.TemplateAdmin, doc)
}

// grid lays a table out as header and row cells, with spare blanks.
func grid(t *record.Table) ([]string, [][]string) {
	cols := append([]string(nil), t.Columns...)
	for range spareCols {
		cols = append(cols, "")
	}
	rows := make([][]string, 0, len(t.Rows)+spareRows)
	for _, row := range t.Rows {
		cells := make([]string, len(cols))
		for i, c := range t.Columns {
			cells[i] = row[c]
		}
		rows = append(rows, cells)
	}
	for range spareRows {
		rows = append(rows, make([]string, len(cols)))
	}
	return cols, rows
}

// gridFromForm restores the grid exactly as submitted.
func gridFromForm(form url.Values) ([]string, [][]string) {
	var cols []string
	for i := 0; form.Has(admin.ColField(i)); i++ {
		cols = append(cols, form.Get(admin.ColField(i)))
	}
	var rows [][]string
	for r := 0; form.Has(admin.CellField(r, 0)); r++ {
		cells := make([]string, len(cols))
		for i := range cols {
			cells[i] = form.Get(admin.CellField(r, i))
		}
		rows = append(rows, cells)
	}
	return cols, rows
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.adminEnabled() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if !admin.Check(s.opts.AdminSecret, r.PostFormValue("password")) {
		slog.Warn("admin login failed", "remote", r.RemoteAddr)
		doc := s.adminDocument(r)
		doc.Error = "Wrong password."
		render(w, http.StatusUnauthorized, output.TemplateAdmin, doc)
		return
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = time.Now().Add(SessionTTL)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookie,
		Value:    token,
		Path:     "/admin",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	slog.Info("admin login")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(AdminCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: AdminCookie, Value: "", Path: "/admin", MaxAge: -1})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !s.adminEnabled() || !s.authed(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sheet := r.PostForm.Get("sheet")

	fail := func(status int, msg string) {
		doc := s.adminDocument(r)
		doc.Admin.Sheets = s.sheets(r.Context())
		doc.Admin.Sheet = sheet
		doc.Admin.Columns, doc.Admin.Rows = gridFromForm(r.PostForm)
		doc.Error = msg
		render(w, status, output.TemplateAdmin, doc)
	}

	if !source.ValidSheetName(sheet) {
		fail(http.StatusBadRequest, "Invalid sheet name.")
		return
	}
	t, err := admin.FromForm(r.PostForm)
	if err != nil {
		fail(http.StatusBadRequest, "Could not read the grid: "+err.Error())
		return
	}
	if err := admin.Save(r.Context(), s.opts.Source, sheet, t); err != nil {
		slog.Error("admin save", "sheet", sheet, "error", redact.String(err.Error()))
		fail(http.StatusOK, "Save failed; your edits are kept below. Try again.")
		return
	}
	slog.Info("sheet saved", "sheet", sheet, "rows", t.Len())
	http.Redirect(w, r, "/admin?saved=1&sheet="+url.QueryEscape(sheet), http.StatusSeeOther)
}
