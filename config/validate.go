// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"

	"codeberg.org/tavernd/tavernd/core/userdata"
)

// validation errors.
var (
	errEmptyDataRoot        = errors.New("storage.dataRoot cannot be empty")
	errInvalidLogFormat     = errors.New("log.logFormat must be \"console\" or \"json\"")
	errInvalidLimiterRate   = errors.New("limiter.requestsPerSecond must be positive when the limiter is enabled")
	errInvalidLimiterBurst  = errors.New("limiter.burst must be positive when the limiter is enabled")
	errDuplicateTemplateKey = errors.New("storage.directories contains a duplicate key")
	errMissingTemplateKey   = errors.New("storage.directories is missing a key required by a file route")
)

// routeBoundKeys are the template keys the file routes serve from. A
// template without them would leave routes with no directory to bind.
var routeBoundKeys = []userdata.Key{
	userdata.KeyBackgrounds,
	userdata.KeyCharacters,
	userdata.KeyAvatars,
	userdata.KeyAssets,
	userdata.KeyUserImages,
	userdata.KeyFiles,
	userdata.KeyExtensions,
}

// validate checks the server configuration.
//
// A configured unix socket simply takes precedence over Host and Port;
// that combination is not treated as an error.
func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DataRoot == "" {
		return errEmptyDataRoot
	}

	if err := userdata.ValidateHandle(cfg.Storage.DefaultHandle); err != nil {
		return fmt.Errorf("storage.defaultHandle: %w", err)
	}

	if err := validateTemplate(cfg.Template()); err != nil {
		return err
	}

	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return errInvalidLogFormat
	}

	if cfg.Limiter.Enabled {
		if cfg.Limiter.RequestsPerSecond <= 0 {
			return errInvalidLimiterRate
		}

		if cfg.Limiter.Burst <= 0 {
			return errInvalidLimiterBurst
		}
	}

	return nil
}

func validateTemplate(tmpl userdata.Template) error {
	seen := make(map[userdata.Key]bool, len(tmpl))

	for _, entry := range tmpl {
		if seen[entry.Key] {
			return fmt.Errorf("%w: %q", errDuplicateTemplateKey, entry.Key)
		}

		seen[entry.Key] = true
	}

	for _, key := range routeBoundKeys {
		if !seen[key] {
			return fmt.Errorf("%w: %q", errMissingTemplateKey, key)
		}
	}

	return nil
}
