// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package user_context is the request enrichment middleware: it resolves
// the user behind each request and attaches their profile and directory
// set to the request's context.
package user_context

import (
	"net/http"

	"codeberg.org/tavernd/tavernd/core/identity"
	"codeberg.org/tavernd/tavernd/core/userdata"
	"codeberg.org/tavernd/tavernd/server/middleware"
	"codeberg.org/tavernd/tavernd/server/request_context"
)

// Attach returns a middleware that resolves the current user through
// provider, computes their directory set from tmpl and dataRoot, and
// stores both on the request context.
//
// Resolution is synchronous pure computation, so the middleware has no
// failure path: it always calls next exactly once.
func Attach(provider identity.Provider, tmpl userdata.Template, dataRoot string) middleware.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		next.ServeHTTP(w, r.WithContext(
			request_context.WithUserContext(r.Context(), r, provider, tmpl, dataRoot),
		))
	}
}
