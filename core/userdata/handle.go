// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package userdata

import (
	"errors"
	"fmt"
	"regexp"
)

// Handle validation errors.
var (
	ErrEmptyHandle  = errors.New("handle must not be empty")
	ErrUnsafeHandle = errors.New("handle is not a safe path segment")
)

// A handle must start with an alphanumeric and may continue with
// alphanumerics, dots, underscores and hyphens. The leading alphanumeric
// rules out "." and ".." as well as dotfile-looking handles; the character
// class rules out path separators on every platform.
var handleRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateHandle reports whether handle is safe to use as a single
// filesystem path segment.
func ValidateHandle(handle string) error {
	if handle == "" {
		return ErrEmptyHandle
	}

	if !handleRegexp.MatchString(handle) {
		return fmt.Errorf("%w: %q", ErrUnsafeHandle, handle)
	}

	return nil
}
