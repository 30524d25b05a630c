// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip sensitive values from strings
// before they appear in output, logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// Placeholder replaces every secret occurrence.
const Placeholder = "[REDACTED]"

// minSecretLen keeps short values from redacting ordinary words.
const minSecretLen = 4

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"SHEETBOARD_ADMIN_PASSWORD",
}

var (
	mu            sync.RWMutex
	cachedSecrets []string
	registered    []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	mu.Lock()
	defer mu.Unlock()
	for _, envVar := range sensitiveEnvVars {
		if val := os.Getenv(envVar); len(val) >= minSecretLen {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// Register adds a secret that did not come from the environment, such as an
// admin password read from a config file.
func Register(secret string) {
	if len(secret) < minSecretLen {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registered = append(registered, secret)
}

// resetCache resets the cached and registered secrets.
func resetCache() {
	mu.Lock()
	cachedSecrets = nil
	registered = nil
	mu.Unlock()
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces any occurrence of a known secret with Placeholder.
// Environment values are cached on first call.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	mu.RLock()
	defer mu.RUnlock()
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	for _, secret := range registered {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return s
}

// Map returns a copy of m with every value passed through String and the
// values of keys that name a password or secret fully replaced.
func Map(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		lk := strings.ToLower(k)
		switch {
		case strings.Contains(lk, "password") || strings.Contains(lk, "secret"):
			if s, ok := v.(string); ok && s == "" {
				out[k] = s
			} else {
				out[k] = Placeholder
			}
		default:
			if s, ok := v.(string); ok {
				out[k] = String(s)
			} else {
				out[k] = v
			}
		}
	}
	return out
}
