// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package identity

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"codeberg.org/tavernd/tavernd/core/userdata"
)

// Single is a Provider with exactly one user, constructed at startup.
//
// It ignores the request on every lookup. The zero value is not usable;
// construct it with NewSingle.
type Single struct {
	profile Profile
}

// NewSingle builds a single-user provider for the given handle.
//
// The handle becomes a path segment under the data root, so it is
// validated here rather than trusted from configuration.
func NewSingle(handle, name string) (*Single, error) {
	if err := userdata.ValidateHandle(handle); err != nil {
		return nil, fmt.Errorf("invalid default handle: %w", err)
	}

	if name == "" {
		name = handle
	}

	return &Single{
		profile: Profile{
			UUID:    uuid.New(),
			Handle:  handle,
			Name:    name,
			Created: time.Now().UTC(),
		},
	}, nil
}

// CurrentHandle always returns the configured handle.
func (s *Single) CurrentHandle(_ *http.Request) string {
	return s.profile.Handle
}

// CurrentProfile always returns the configured profile.
//
// The returned pointer refers to a copy, so callers cannot corrupt the
// provider's state through it.
func (s *Single) CurrentProfile(_ *http.Request) *Profile {
	profile := s.profile

	return &profile
}

// AllHandles returns a single-element slice with the configured handle.
func (s *Single) AllHandles() []string {
	return []string{s.profile.Handle}
}

// InitStorage is a no-op. Directory creation is owned by an external
// collaborator; nothing needs to happen here for a single fixed user.
func (s *Single) InitStorage() error {
	return nil
}
