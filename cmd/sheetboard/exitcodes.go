// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package main

import "fmt"

// Exit codes for the sheetboard CLI.
const (
	ExitOK          = 0 // Success.
	ExitInvalidArgs = 1 // Invalid arguments or config.
	ExitUnavailable = 2 // The sheet store could not be opened, read, or written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitUnavailable:
			msg = "sheetboard: sheet store unavailable"
		default:
			msg = "sheetboard: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
