// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package userdata

import (
	"path/filepath"
	"testing"
)

func TestResolve_CoversEveryTemplateKey(t *testing.T) {
	t.Parallel()

	tmpl := DefaultTemplate()

	for _, handle := range []string{"default-user", "alice", "bob_2"} {
		dirs := tmpl.Resolve("./data", handle)

		if len(dirs) != len(tmpl) {
			t.Fatalf("Resolve(%q) returned %d entries, template has %d", handle, len(dirs), len(tmpl))
		}

		for _, entry := range tmpl {
			want := filepath.Join("./data", handle, entry.Fragment)

			got, ok := dirs[entry.Key]
			if !ok {
				t.Errorf("Resolve(%q) is missing key %q", handle, entry.Key)

				continue
			}

			if got != want {
				t.Errorf("Resolve(%q)[%q] = %q, want %q", handle, entry.Key, got, want)
			}
		}
	}
}

func TestResolve_DefaultUserCharacters(t *testing.T) {
	t.Parallel()

	dirs := DefaultTemplate().Resolve("./data", "default-user")

	want := filepath.Join("./data", "default-user", "characters")
	if dirs[KeyCharacters] != want {
		t.Errorf("characters directory = %q, want %q", dirs[KeyCharacters], want)
	}
}

func TestResolve_DoesNotMutateTemplate(t *testing.T) {
	t.Parallel()

	tmpl := DefaultTemplate()

	before := make([]Entry, len(tmpl))
	copy(before, tmpl)

	first := tmpl.Resolve("./data", "alice")
	second := tmpl.Resolve("/srv/tavern", "bob")

	for i, entry := range tmpl {
		if entry != before[i] {
			t.Fatalf("template entry %d changed from %+v to %+v", i, before[i], entry)
		}
	}

	// The two results must be independent instances.
	first[KeyChats] = "/clobbered"

	if second[KeyChats] == "/clobbered" {
		t.Error("results of separate Resolve calls share storage")
	}
}

func TestResolve_ResultsAreIndependentPerHandle(t *testing.T) {
	t.Parallel()

	tmpl := DefaultTemplate()

	alice := tmpl.Resolve("./data", "alice")
	bob := tmpl.Resolve("./data", "bob")

	for key, dir := range alice {
		if dir == bob[key] {
			t.Errorf("key %q resolves to the same directory %q for different handles", key, dir)
		}
	}
}
