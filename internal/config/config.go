// Package config provides configuration management for playkit using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultMaxTicks     = 240
	defaultTickInterval = 10 * time.Millisecond
)

// Config holds all configuration for the application.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// SimConfig holds playback simulation configuration.
type SimConfig struct {
	// MaxTicks caps the number of simulation ticks when the scenario does
	// not set its own count.
	MaxTicks int `mapstructure:"max_ticks"`

	// TickInterval is the simulated wall-clock time per tick.
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// FailFast stops the run on the first invariant violation instead of
	// collecting all of them.
	FailFast bool `mapstructure:"fail_fast"`
}

// Load reads configuration from the given file path, environment variables
// and defaults. An empty path searches the usual locations; a missing
// config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/playkit")
		v.AddConfigPath("$HOME/.playkit")
	}

	v.SetEnvPrefix("PLAYKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults registers all default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", "")

	v.SetDefault("sim.max_ticks", defaultMaxTicks)
	v.SetDefault("sim.tick_interval", defaultTickInterval)
	v.SetDefault("sim.fail_fast", false)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}

	if c.Sim.MaxTicks <= 0 {
		return fmt.Errorf("sim.max_ticks must be positive, got %d", c.Sim.MaxTicks)
	}
	if c.Sim.TickInterval <= 0 {
		return fmt.Errorf("sim.tick_interval must be positive, got %s", c.Sim.TickInterval)
	}

	return nil
}
