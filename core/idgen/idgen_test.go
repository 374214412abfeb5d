// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"strings"
	"testing"
	"time"
)

func TestMake(t *testing.T) {
	t.Parallel()

	now := time.Now()

	if strings.ReplaceAll(now.Format("15:04:05"), ":", "") != maketime(now) {
		t.Error("timestamp prefix does not match wall clock")
	}

	seen := make(map[string]bool)

	for range 100 {
		id := Make()

		if len(id) < 7 {
			t.Fatalf("ID %q is too short", id)
		}

		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}

		seen[id] = true
	}
}
