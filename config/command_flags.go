// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"os"
)

// parseCommandLineArgs defines and parses flags, returning the path of the
// configuration file to load.
//
// Precedence: the -config flag, then the TAVERND_CONFIGFILE environment
// variable, then ./config.yaml (falling back to ./config.yml when only
// that spelling exists).
func parseCommandLineArgs() string {
	if flag.Lookup("config") == nil {
		flag.String("config", "./config.yaml", "Path to a tavernd configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	configFilePath := flag.Lookup("config").Value.String()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	if configFlagUserSet {
		return configFilePath
	}

	if envVar := os.Getenv("TAVERND_CONFIGFILE"); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		ymlPath := "./config.yml"
		if _, statErr := os.Stat(ymlPath); statErr == nil {
			return ymlPath
		}
	}

	return configFilePath
}
