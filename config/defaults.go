// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

const (
	defaultLimiterRequestsPerSecond = 50
	defaultLimiterBurst             = 100
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8100"

	cfg.Storage.DataRoot = "./data"
	cfg.Storage.DefaultHandle = "default-user"
	cfg.Storage.DefaultName = "User"

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerSecond = defaultLimiterRequestsPerSecond
	cfg.Limiter.Burst = defaultLimiterBurst

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
