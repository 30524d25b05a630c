// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package visitor

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the session cookie identifying a visitor.
const CookieName = "sheetboard_visitor"

type ctxKey int

const (
	countedKey ctxKey = iota
	idKey
)

// WithCounted marks ctx as belonging to a visit that was already counted.
func WithCounted(ctx context.Context) context.Context {
	return context.WithValue(ctx, countedKey, true)
}

// Counted reports whether ctx belongs to an already counted visit.
func Counted(ctx context.Context) bool {
	v, _ := ctx.Value(countedKey).(bool)
	return v
}

// ID returns the visitor ID carried by ctx, if any.
func ID(ctx context.Context) string {
	v, _ := ctx.Value(idKey).(string)
	return v
}

// Middleware issues a session cookie on the first request of a visit and
// marks every later request carrying it as counted.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c, err := r.Cookie(CookieName); err == nil && validID(c.Value) {
			ctx = WithCounted(context.WithValue(ctx, idKey, c.Value))
		} else {
			id := uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			ctx = context.WithValue(ctx, idKey, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
