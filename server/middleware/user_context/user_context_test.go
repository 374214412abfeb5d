// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package user_context

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"codeberg.org/tavernd/tavernd/core/identity"
	"codeberg.org/tavernd/tavernd/core/userdata"
	"codeberg.org/tavernd/tavernd/server/middleware"
	"codeberg.org/tavernd/tavernd/server/request_context"
)

func newTestProvider(t *testing.T) identity.Provider {
	t.Helper()

	provider, err := identity.NewSingle("default-user", "Default User")
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}

	return provider
}

// TestAttach_PopulatesProfileAndDirectories verifies that handlers behind
// the middleware always see both the profile and the directory set.
func TestAttach_PopulatesProfileAndDirectories(t *testing.T) {
	t.Parallel()

	tmpl := userdata.DefaultTemplate()

	var (
		profile     *identity.Profile
		directories userdata.Directories
		requestID   string
	)

	handler := middleware.Wrap(
		Attach(newTestProvider(t), tmpl, "./data"),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := request_context.FromRequest(r)

			profile = rc.Profile
			directories = rc.Directories
			requestID = rc.RequestID

			w.WriteHeader(http.StatusOK)
		}),
	)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/characters/a.png", nil))

	if profile == nil {
		t.Fatal("profile was not attached")
	}

	if profile.Handle != "default-user" {
		t.Errorf("profile handle = %q, want %q", profile.Handle, "default-user")
	}

	if requestID == "" {
		t.Error("request ID was not attached")
	}

	if len(directories) != len(tmpl) {
		t.Fatalf("directories has %d entries, want %d", len(directories), len(tmpl))
	}

	want := filepath.Join("./data", "default-user", "characters")
	if directories[userdata.KeyCharacters] != want {
		t.Errorf("characters directory = %q, want %q", directories[userdata.KeyCharacters], want)
	}
}

// TestAttach_AlwaysCallsNext verifies the middleware has no rejection path.
func TestAttach_AlwaysCallsNext(t *testing.T) {
	t.Parallel()

	called := 0
	handler := middleware.Wrap(
		Attach(newTestProvider(t), userdata.DefaultTemplate(), "./data"),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called++

			w.WriteHeader(http.StatusOK)
		}),
	)

	for _, target := range []string{"/", "/characters/x", "/nonsense"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	if called != 3 {
		t.Errorf("next handler ran %d times, want 3", called)
	}
}

// TestAttach_FreshDirectoriesPerRequest verifies requests do not share the
// resolved directory map.
func TestAttach_FreshDirectoriesPerRequest(t *testing.T) {
	t.Parallel()

	var seen []userdata.Directories

	handler := middleware.Wrap(
		Attach(newTestProvider(t), userdata.DefaultTemplate(), "./data"),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, request_context.FromRequest(r).Directories)

			w.WriteHeader(http.StatusOK)
		}),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/b", nil))

	if len(seen) != 2 {
		t.Fatalf("captured %d directory maps, want 2", len(seen))
	}

	seen[0][userdata.KeyChats] = "/clobbered"

	if seen[1][userdata.KeyChats] == "/clobbered" {
		t.Error("requests share a directory map")
	}
}
