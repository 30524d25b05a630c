// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package log configures structured logging for sheetboard using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Options selects the level and encoding of the default logger.
type Options struct {
	Verbose bool
	Quiet   bool
	JSON    bool      // JSON lines instead of logfmt-style text
	Writer  io.Writer // defaults to stderr
}

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr using slog.TextHandler.
func Setup(verbose, quiet bool) {
	Configure(Options{Verbose: verbose, Quiet: quiet})
}

// Configure installs a default logger built from o and returns it.
func Configure(o Options) *slog.Logger {
	w := o.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: Level(o.Verbose, o.Quiet)}

	var handler slog.Handler
	if o.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
