// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package identity resolves the user behind an HTTP request.

The Provider interface is the extension point for future multi-tenancy.
Today the only implementation is Single, which ignores the request entirely
and always answers with one configured user.
*/
package identity

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Profile describes one known user. Immutable for the lifetime of a
// request.
type Profile struct {
	UUID    uuid.UUID
	Handle  string
	Name    string
	Created time.Time

	// PasswordHash is carried for collaborators that implement
	// authentication; this package never reads it.
	PasswordHash string
}

// Provider resolves identities for requests and enumerates known users.
//
// Implementations must be safe for concurrent use; every request handler
// may call them.
type Provider interface {
	// CurrentHandle returns the handle of the user behind r.
	CurrentHandle(r *http.Request) string

	// CurrentProfile returns the profile of the user behind r.
	CurrentProfile(r *http.Request) *Profile

	// AllHandles enumerates every handle the provider knows about.
	AllHandles() []string

	// InitStorage performs one-time provider setup at process start.
	InitStorage() error
}
