package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name:   "empty config gets defaults",
			modify: func(c *Config) {},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultPrefix(), c.Output.Prefix)
				assert.Equal(t, DefaultIndexCommand, c.Index.Command)
				assert.Equal(t, DefaultLogLevel, c.Logging.Level)
				assert.Equal(t, DefaultLogFormat, c.Logging.Format)
			},
		},
		{
			name: "custom index command kept",
			modify: func(c *Config) {
				c.Index.Command = []string{"conda-index", "--no-progress"}
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, []string{"conda-index", "--no-progress"}, c.Index.Command)
			},
		},
		{
			name: "blank index executable rejected",
			modify: func(c *Config) {
				c.Index.Command = []string{" ", "index"}
			},
			wantErr: true,
		},
		{
			name: "unknown log level rejected",
			modify: func(c *Config) {
				c.Logging.Level = "loud"
			},
			wantErr: true,
		},
		{
			name: "json format accepted",
			modify: func(c *Config) {
				c.Logging.Format = "json"
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "json", c.Logging.Format)
			},
		},
		{
			name: "unknown log format rejected",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var ve *domain.ValidationError
				assert.True(t, errors.As(err, &ve))
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfig_Validate_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := &Config{Output: OutputConfig{Prefix: "~/channels"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(home, "channels"), cfg.Output.Prefix)
}

// TestDefault tests default configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.True(t, strings.HasSuffix(cfg.Output.Prefix, DefaultPrefixName))
	assert.False(t, cfg.Output.DryRun)
	assert.False(t, cfg.Output.Progress)
	assert.False(t, cfg.Index.Enabled)
	assert.Equal(t, []string{"conda", "index"}, cfg.Index.Command)
	assert.False(t, cfg.State.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)

	// Mutating the default must not leak into DefaultIndexCommand
	cfg.Index.Command[0] = "other"
	assert.Equal(t, "conda", DefaultIndexCommand[0])
}

func TestDefaultPrefix(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cwd, "local"), DefaultPrefix())
}

func TestConfigPaths(t *testing.T) {
	assert.Contains(t, ConfigDir(), ".chuukaibutsu")
	assert.Equal(t, filepath.Join(ConfigDir(), "config.yaml"), ConfigFilePath())
}

// TestLoad_WithMissingConfig tests loading with no config file
func TestLoad_WithMissingConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Output.Prefix)
	assert.Equal(t, DefaultIndexCommand, cfg.Index.Command)
}

// TestLoad_WithInvalidConfigFile tests loading with invalid config file
func TestLoad_WithInvalidConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("invalid: yaml: content: ["), 0644))
	t.Chdir(tmpDir)

	cfg, err := load(viper.New())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoad_WithValidConfigFile tests loading with valid config file
func TestLoad_WithValidConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
output:
  prefix: "/srv/channels"
  dry_run: true

index:
  enabled: true
  command: ["conda-index", "--no-progress"]

state:
  enabled: true

logging:
  level: "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0644))
	t.Chdir(tmpDir)

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/srv/channels", cfg.Output.Prefix)
	assert.True(t, cfg.Output.DryRun)
	assert.True(t, cfg.Index.Enabled)
	assert.Equal(t, []string{"conda-index", "--no-progress"}, cfg.Index.Command)
	assert.True(t, cfg.State.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

// TestLoadWithEnvironmentVariable tests loading with environment variable
func TestLoadWithEnvironmentVariable(t *testing.T) {
	t.Setenv("CHUUKAIBUTSU_OUTPUT_PREFIX", "/env/channels")
	t.Setenv("CHUUKAIBUTSU_INDEX_ENABLED", "true")
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/env/channels", cfg.Output.Prefix)
	assert.True(t, cfg.Index.Enabled)
}

func TestConfig_Marshal(t *testing.T) {
	cfg := Default()
	cfg.Output.Prefix = "/srv/channels"

	data, err := cfg.Marshal()
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
	assert.Contains(t, string(data), "dry_run: false")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()

	require.NoError(t, WriteFile(path, cfg, false))
	_, err := os.Stat(path)
	require.NoError(t, err)

	err = WriteFile(path, cfg, false)
	assert.ErrorIs(t, err, ErrConfigExists)

	cfg.Logging.Level = "debug"
	require.NoError(t, WriteFile(path, cfg, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: debug")
}
