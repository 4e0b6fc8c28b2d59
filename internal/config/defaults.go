package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	// DefaultPrefixName is the channel tree directory created under the
	// working directory when no prefix is given
	DefaultPrefixName = "local"

	DefaultIndexEnabled = false
	DefaultStateEnabled = false

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultIndexCommand is the indexer run once per channel root
var DefaultIndexCommand = []string{"conda", "index"}

// DefaultPrefix returns <cwd>/local, falling back to a relative path when
// the working directory is unavailable
func DefaultPrefix() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultPrefixName
	}
	return filepath.Join(cwd, DefaultPrefixName)
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chuukaibutsu"
	}
	return filepath.Join(home, ".chuukaibutsu")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Prefix:   DefaultPrefix(),
			DryRun:   false,
			Progress: false,
		},
		Index: IndexConfig{
			Enabled: DefaultIndexEnabled,
			Command: append([]string(nil), DefaultIndexCommand...),
		},
		State: StateConfig{
			Enabled: DefaultStateEnabled,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
