// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/davetashner/sheetboard/internal/admin"
	"github.com/davetashner/sheetboard/internal/events"
	"github.com/davetashner/sheetboard/internal/present"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// Page templates accepted by RenderDocument.
const (
	TemplateView   = "view"
	TemplateMarket = "market"
	TemplateEvents = "events"
	TemplateAdmin  = "admin"
)

// Document is the data behind every HTML page. Standalone documents omit the
// navigation bar and every form.
type Document struct {
	Title       string
	GeneratedAt string
	Standalone  bool
	Nav         []NavLink
	Active      string
	Visitors    *VisitorBox
	Notice      string
	Error       string

	Page   *present.Page
	Expand bool
	Market *present.MarketPage
	Events []events.Event
	Admin  *AdminGrid
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Name  string
	Label string
	Href  string
}

// VisitorBox is the formatted visitor widget.
type VisitorBox struct {
	Total string
	Today string
}

// AdminGrid is the state of the sheet editor.
type AdminGrid struct {
	Enabled bool
	Authed  bool
	Sheets  []string
	Sheet   string
	Columns []string
	Rows    [][]string
}

// HTMLFormatter writes a view as a self-contained HTML page.
type HTMLFormatter struct {
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

// Format writes the page as a standalone document with details expanded.
func (h *HTMLFormatter) Format(page present.Page, w io.Writer) error {
	now := time.Now()
	if h.nowFunc != nil {
		now = h.nowFunc()
	}
	return RenderDocument(w, TemplateView, Document{
		Title:       page.Title,
		GeneratedAt: now.Format(time.RFC3339),
		Standalone:  true,
		Page:        &page,
		Expand:      true,
	})
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

func templates() *template.Template {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("sheetboard").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
			"colField":  admin.ColField,
			"cellField": admin.CellField,
			"delField":  admin.DelField,
		}).Parse(htmlTemplate))
	})
	return htmlTmpl
}

// RenderDocument executes the named page template.
func RenderDocument(w io.Writer, name string, doc Document) error {
	if doc.GeneratedAt == "" {
		doc.GeneratedAt = time.Now().Format(time.RFC3339)
	}
	if err := templates().ExecuteTemplate(w, name, doc); err != nil {
		return fmt.Errorf("execute html template %s: %w", name, err)
	}
	return nil
}
