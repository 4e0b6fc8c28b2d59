package tui

import (
	"strings"

	"github.com/quantmind-br/chuukaibutsu/internal/config"
)

// ConfigValues holds form values that map to the Config struct.
// The indexer command is edited as a single space-separated string.
type ConfigValues struct {
	Prefix   string
	DryRun   bool
	Progress bool

	IndexEnabled bool
	IndexCommand string

	StateEnabled bool

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing.
// A nil config yields the defaults.
func FromConfig(cfg *config.Config) *ConfigValues {
	if cfg == nil {
		cfg = config.Default()
	}

	return &ConfigValues{
		Prefix:   cfg.Output.Prefix,
		DryRun:   cfg.Output.DryRun,
		Progress: cfg.Output.Progress,

		IndexEnabled: cfg.Index.Enabled,
		IndexCommand: strings.Join(cfg.Index.Command, " "),

		StateEnabled: cfg.State.Enabled,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	cfg := &config.Config{
		Output: config.OutputConfig{
			Prefix:   strings.TrimSpace(v.Prefix),
			DryRun:   v.DryRun,
			Progress: v.Progress,
		},
		Index: config.IndexConfig{
			Enabled: v.IndexEnabled,
			Command: strings.Fields(v.IndexCommand),
		},
		State: config.StateConfig{
			Enabled: v.StateEnabled,
		},
		Logging: config.LoggingConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.LogLevel)),
			Format: strings.ToLower(strings.TrimSpace(v.LogFormat)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
