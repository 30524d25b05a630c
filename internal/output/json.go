// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davetashner/sheetboard/internal/present"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps a page with metadata for the JSON output format.
type JSONEnvelope struct {
	View     present.Page `json:"view"`
	Metadata JSONMetadata `json:"metadata"`
}

// JSONMetadata describes the run that produced the page.
type JSONMetadata struct {
	Count       int    `json:"count"`
	GeneratedAt string `json:"generated_at"`
}

// JSONFormatter writes a page as a JSON object with metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the page to w. Output is pretty-printed for terminals and
// non-file writers, compact for pipes and files, unless Compact is set.
func (f *JSONFormatter) Format(page present.Page, w io.Writer) error {
	if page.Rows == nil {
		page.Rows = []present.Row{}
	}
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	envelope := JSONEnvelope{
		View: page,
		Metadata: JSONMetadata{
			Count:       len(page.Rows),
			GeneratedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}
	return WriteJSON(w, envelope, f.shouldCompact(w))
}

// WriteJSON marshals v to w followed by a newline.
func WriteJSON(w io.Writer, v any, compact bool) error {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// shouldCompact determines whether to use compact mode.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
