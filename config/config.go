// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	_ "codeberg.org/tavernd/tavernd/core/audit" // setup better logging format
	"codeberg.org/tavernd/tavernd/core/userdata"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host       string `env:"TAVERND_HOST" yaml:"host"`
		Port       string `env:"TAVERND_PORT" yaml:"port"`
		UnixSocket string `env:"TAVERND_UNIXSOCKET" yaml:"unixSocket"`
	} `yaml:"basic"`

	Storage struct {
		// DataRoot is the base directory under which all per-user trees live.
		DataRoot string `env:"TAVERND_DATA_ROOT" yaml:"dataRoot"`

		// DefaultHandle identifies the single user of this deployment.
		DefaultHandle string `env:"TAVERND_DEFAULT_HANDLE" yaml:"defaultHandle"`
		DefaultName   string `env:"TAVERND_DEFAULT_NAME" yaml:"defaultName"`

		// Directories overrides the built-in directory template when set.
		Directories []userdata.Entry `yaml:"directories"`
	} `yaml:"storage"`

	Limiter struct {
		Enabled           bool    `env:"TAVERND_LIMITER" yaml:"enabled"`
		RequestsPerSecond float64 `env:"TAVERND_LIMITER_RPS" yaml:"requestsPerSecond"`
		Burst             int     `env:"TAVERND_LIMITER_BURST" yaml:"burst"`
	} `yaml:"limiter"`

	Log struct {
		Level        string   `env:"TAVERND_LOG_LEVEL" yaml:"logLevel"`
		Outputs      []string `env:"TAVERND_LOG_OUTPUTS" envSeparator:"," yaml:"logOutputs"`
		Format       string   `env:"TAVERND_LOG_FORMAT" yaml:"logFormat"`
		SkipPrefixes []string `env:"TAVERND_LOG_SKIP_PREFIXES" envSeparator:"," yaml:"skipPrefixes"`
	} `yaml:"log"`

	Instance struct {
		StartingTime string `yaml:"-"`
	} `yaml:"instance"`
}

// LoadConfig loads the configuration from various sources.
//
// Precedence, lowest first: compiled defaults, the YAML configuration
// file, environment variables.
func (cfg *ServerConfig) LoadConfig() error {
	configFilePath := parseCommandLineArgs()

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// Template returns the directory template in effect: the configured
// override when present, the built-in layout otherwise.
func (cfg *ServerConfig) Template() userdata.Template {
	if len(cfg.Storage.Directories) > 0 {
		return userdata.Template(cfg.Storage.Directories)
	}

	return userdata.DefaultTemplate()
}

// ShouldSkipServerLogging determines if a request should bypass request logging.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	for _, prefix := range cfg.Log.SkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
