package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Logging.AddSource)
	assert.Equal(t, 240, cfg.Sim.MaxTicks)
	assert.Equal(t, 10*time.Millisecond, cfg.Sim.TickInterval)
	assert.False(t, cfg.Sim.FailFast)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
logging:
  level: debug
  format: json
  add_source: true
sim:
  max_ticks: 50
  tick_interval: 25ms
  fail_fast: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.AddSource)
	assert.Equal(t, 50, cfg.Sim.MaxTicks)
	assert.Equal(t, 25*time.Millisecond, cfg.Sim.TickInterval)
	assert.True(t, cfg.Sim.FailFast)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PLAYKIT_LOGGING_LEVEL", "warn")
	t.Setenv("PLAYKIT_SIM_MAX_TICKS", "12")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 12, cfg.Sim.MaxTicks)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Logging: LoggingConfig{Level: "info", Format: "text"},
			Sim:     SimConfig{MaxTicks: 10, TickInterval: time.Millisecond},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "trace level accepted",
			mutate: func(c *Config) { c.Logging.Level = "trace" },
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "zero ticks",
			mutate:  func(c *Config) { c.Sim.MaxTicks = 0 },
			wantErr: "max_ticks must be positive",
		},
		{
			name:    "negative tick interval",
			mutate:  func(c *Config) { c.Sim.TickInterval = -time.Second },
			wantErr: "tick_interval must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
