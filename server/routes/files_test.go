// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/tavernd/tavernd/core/identity"
	"codeberg.org/tavernd/tavernd/core/userdata"
	"codeberg.org/tavernd/tavernd/server/request_context"
)

// newFileRequest builds a request whose context carries a resolved user,
// with target as the already-stripped relative file path.
func newFileRequest(t *testing.T, dataRoot, target string) *http.Request {
	t.Helper()

	provider, err := identity.NewSingle("default-user", "")
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = target

	ctx := request_context.WithUserContext(req.Context(), req, provider, userdata.DefaultTemplate(), dataRoot)

	return req.WithContext(ctx)
}

// writeUserFile creates a file under the default user's directory for key.
func writeUserFile(t *testing.T, dataRoot string, key userdata.Key, name string, content []byte) string {
	t.Helper()

	fragment, ok := userdata.DefaultTemplate().Fragment(key)
	if !ok {
		t.Fatalf("unknown template key %q", key)
	}

	dir := filepath.Join(dataRoot, "default-user", fragment)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestServeUserFile_ServesExactBytes(t *testing.T) {
	t.Parallel()

	dataRoot := t.TempDir()
	content := []byte("\x89PNG\r\n\x1a\nnot really a png")
	writeUserFile(t, dataRoot, userdata.KeyCharacters, "alice.png", content)

	rr := httptest.NewRecorder()

	err := ServeUserFile(userdata.KeyCharacters)(rr, newFileRequest(t, dataRoot, "alice.png"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rr.Body.String() != string(content) {
		t.Errorf("body = %q, want %q", rr.Body.String(), content)
	}

	if got := rr.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
}

func TestServeUserFile_SniffsUnknownExtensions(t *testing.T) {
	t.Parallel()

	dataRoot := t.TempDir()
	writeUserFile(t, dataRoot, userdata.KeyFiles, "notes.unknownext", []byte("plain text notes"))

	rr := httptest.NewRecorder()

	err := ServeUserFile(userdata.KeyFiles)(rr, newFileRequest(t, dataRoot, "notes.unknownext"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain prefix", got)
	}
}

func TestServeUserFile_ServesNestedPaths(t *testing.T) {
	t.Parallel()

	dataRoot := t.TempDir()

	fragment, _ := userdata.DefaultTemplate().Fragment(userdata.KeyExtensions)

	nested := filepath.Join(dataRoot, "default-user", fragment, "gallery")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := os.WriteFile(filepath.Join(nested, "index.js"), []byte("export {}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rr := httptest.NewRecorder()

	err := ServeUserFile(userdata.KeyExtensions)(rr, newFileRequest(t, dataRoot, "gallery/index.js"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rr.Body.String() != "export {}" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "export {}")
	}
}

func TestServeUserFile_MissingFile(t *testing.T) {
	t.Parallel()

	dataRoot := t.TempDir()

	rr := httptest.NewRecorder()

	err := ServeUserFile(userdata.KeyCharacters)(rr, newFileRequest(t, dataRoot, "nope.png"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestServeUserFile_RejectsDirectories(t *testing.T) {
	t.Parallel()

	dataRoot := t.TempDir()
	writeUserFile(t, dataRoot, userdata.KeyCharacters, "inside.png", nil)

	rr := httptest.NewRecorder()

	// "." resolves to the bound directory itself.
	if err := ServeUserFile(userdata.KeyCharacters)(rr, newFileRequest(t, dataRoot, ".")); err == nil {
		t.Fatal("expected an error when the target is a directory")
	}
}

func TestServeUserFile_TraversalStaysConfined(t *testing.T) {
	t.Parallel()

	dataRoot := t.TempDir()
	writeUserFile(t, dataRoot, userdata.KeyCharacters, "inside.png", []byte("inside"))

	// A secret outside the characters directory that traversal must not reach.
	secret := filepath.Join(dataRoot, "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	attempts := []string{
		"../secret.txt",
		"../../secret.txt",
		"../../../secret.txt",
		"..%2Fsecret.txt",
		"foo/../../secret.txt",
	}

	for _, attempt := range attempts {
		rr := httptest.NewRecorder()

		err := ServeUserFile(userdata.KeyCharacters)(rr, newFileRequest(t, dataRoot, attempt))
		if err == nil && rr.Body.String() == "secret" {
			t.Errorf("attempt %q escaped the characters directory", attempt)
		}
	}
}

func TestSecurePath_NeverEscapesRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join("data", "default-user", "characters")

	for _, rel := range []string{
		"a.png",
		"sub/a.png",
		"../a.png",
		"../../../../etc/passwd",
		"..",
		".",
		"",
		"a/../../b",
	} {
		got := securePath(root, rel)
		if got != root && !strings.HasPrefix(got, root+string(filepath.Separator)) {
			t.Errorf("securePath(%q, %q) = %q escapes root", root, rel, got)
		}
	}
}

func TestServeUserFile_FailsWithoutUserContext(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alice.png", nil)

	err := ServeUserFile(userdata.KeyCharacters)(rr, req)
	if !errors.Is(err, ErrNoUserContext) {
		t.Errorf("error = %v, want ErrNoUserContext", err)
	}
}
