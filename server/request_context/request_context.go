// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package requestcontext provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"

	"codeberg.org/tavernd/tavernd/core/identity"
	"codeberg.org/tavernd/tavernd/core/idgen"
	"codeberg.org/tavernd/tavernd/core/userdata"
)

// RequestContext carries request-scoped data through the middleware chain.
//
// This data survives the entire lifetime of a single HTTP request and is
// read-only once attached; handlers running for the same request may read
// it concurrently.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds any critical error encountered during request processing.
	//
	// Populated by middleware.CatchError when handlers return errors,
	// which replaces the normal response with the uniform not-found status.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	// Profile identifies the user behind this request.
	Profile *identity.Profile

	// Directories is the user's resolved directory set. A nil map means
	// the enrichment middleware did not run; file handlers treat that as
	// an error rather than serving from an undefined root.
	Directories userdata.Directories
}

// requestContextKeyType defines a unique type for a RequestContext key.
type requestContextKeyType struct{}

// requestContextKey is a unique key used to access RequestContext
// values from a context.Context.
var requestContextKey = requestContextKeyType{}

// WithUserContext initializes a new request context, resolves the user
// behind r, and attaches both to the parent context.
//
// This is called once per request by the enrichment middleware, before
// any route handler that depends on user state.
func WithUserContext(
	ctx context.Context,
	r *http.Request,
	provider identity.Provider,
	tmpl userdata.Template,
	dataRoot string,
) context.Context {
	rc := RequestContext{
		RequestID:   idgen.Make(),
		StatusCode:  http.StatusOK,
		Profile:     provider.CurrentProfile(r),
		Directories: tmpl.Resolve(dataRoot, provider.CurrentHandle(r)),
	}

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns a zero-value instance. The zero value
// carries no profile and a nil directory set, which file handlers reject.
func FromContext(ctx context.Context) *RequestContext {
	if v := ctx.Value(requestContextKey); v != nil {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}

	return &RequestContext{}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
//
// Prefer this in handlers that have access to the *http.Request object.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
