package config

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Index   IndexConfig   `mapstructure:"index" yaml:"index"`
	State   StateConfig   `mapstructure:"state" yaml:"state"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains channel tree settings
type OutputConfig struct {
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
	DryRun   bool   `mapstructure:"dry_run" yaml:"dry_run"`
	Progress bool   `mapstructure:"progress" yaml:"progress"`
}

// IndexConfig contains settings for the post-distribution indexer
type IndexConfig struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Command []string `mapstructure:"command" yaml:"command"`
}

// StateConfig contains placement ledger settings
type StateConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration, filling in defaults for empty values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Prefix) == "" {
		c.Output.Prefix = DefaultPrefix()
	}
	c.Output.Prefix = utils.ExpandPath(c.Output.Prefix)

	if len(c.Index.Command) == 0 {
		c.Index.Command = append([]string(nil), DefaultIndexCommand...)
	}
	if strings.TrimSpace(c.Index.Command[0]) == "" {
		return domain.NewValidationError("index.command", "executable must not be empty")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if !validLogLevels[c.Logging.Level] {
		return domain.NewValidationError("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "":
		c.Logging.Format = DefaultLogFormat
	case "pretty", "json":
	default:
		return domain.NewValidationError("logging.format", fmt.Sprintf("unknown format %q (use pretty or json)", c.Logging.Format))
	}

	return nil
}
