// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package userdata

import "path/filepath"

// Directories maps every logical directory name of a Template to an
// absolute path for one user. It is derived data, recomputed per request,
// and must never be mutated after construction.
type Directories map[Key]string

// Resolve computes the directory set for handle under dataRoot.
//
// Pure function of (dataRoot, handle, template): it allocates a fresh map
// on every call and never writes to the template. Every template key is
// present in the result with value filepath.Join(dataRoot, handle, fragment).
//
// The handle is used verbatim as a path segment; callers that accept
// handles from outside the process must run ValidateHandle first.
func (t Template) Resolve(dataRoot, handle string) Directories {
	dirs := make(Directories, len(t))
	for _, entry := range t {
		dirs[entry.Key] = filepath.Join(dataRoot, handle, entry.Fragment)
	}

	return dirs
}
