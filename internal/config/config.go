// Package config provides configuration loading using koanf.
// Precedence: environment variables over compiled defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/r4nd0lph-c/Playground2D/internal/gameclock"
)

// ErrInvalidConfig is returned when a configuration value fails
// validation at load time. Startup failure, not a runtime condition.
var ErrInvalidConfig = errors.New("invalid configuration value")

// Config holds all service configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	// Logging configuration
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	Clock  ClockConfig  `koanf:"clock"`
	Server ServerConfig `koanf:"server"`

	// OpenTelemetry configuration
	OTEL OTELConfig `koanf:"otel"`
}

// ClockConfig holds the game-clock driver configuration. These are the
// only knobs the driver exposes; the conversion core reads none of them.
type ClockConfig struct {
	// Scale is the rate factor applied to elapsed wall time.
	// Must be within [gameclock.MinScale, gameclock.MaxScale].
	Scale float64 `koanf:"scale"`
	// Paused starts the clock with advancement gated off.
	Paused bool `koanf:"paused"`
	// TickInterval is the wall-clock period between driver ticks.
	TickInterval time.Duration `koanf:"tick_interval"`
	// StartAbsolute is the initial absolute game time in seconds.
	StartAbsolute float64 `koanf:"start_absolute"`
}

// ServerConfig holds the HTTP display surface configuration.
type ServerConfig struct {
	HTTPPort int `koanf:"http_port"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint    string `koanf:"endpoint"` // Empty disables OTLP export
	ServiceName string `koanf:"service_name"`
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		LogLevel:    "info",
		LogFormat:   "json",

		Clock: ClockConfig{
			Scale:         1.0,
			Paused:        false,
			TickInterval:  time.Second,
			StartAbsolute: 0,
		},
		Server: ServerConfig{
			HTTPPort: 8080,
		},
	}
}

// envKeys maps environment variable names to config keys. The mapping
// is explicit because multi-word leaf keys make a naive
// underscore-to-dot rewrite ambiguous: CLOCK_TICK_INTERVAL must land on
// clock.tick_interval, not clock.tick.interval. Variables not listed
// here are ignored.
var envKeys = map[string]string{
	"ENVIRONMENT":          "environment",
	"LOG_LEVEL":            "log_level",
	"LOG_FORMAT":           "log_format",
	"CLOCK_SCALE":          "clock.scale",
	"CLOCK_PAUSED":         "clock.paused",
	"CLOCK_TICK_INTERVAL":  "clock.tick_interval",
	"CLOCK_START_ABSOLUTE": "clock.start_absolute",
	"SERVER_HTTP_PORT":     "server.http_port",
	"OTEL_ENDPOINT":        "otel.endpoint",
	"OTEL_SERVICE_NAME":    "otel.service_name",
}

// Load loads configuration: environment variables layered over compiled
// defaults. Recognized variables are listed in envKeys.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	// An empty key from the callback drops the variable, so process
	// environment noise never reaches Unmarshal.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[strings.ToUpper(s)]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the driver could not honor. The scale
// clamp range is enforced here so a bad deployment fails at startup
// instead of being silently clamped at runtime.
func validate(cfg *Config) error {
	if cfg.Clock.Scale < gameclock.MinScale || cfg.Clock.Scale > gameclock.MaxScale {
		return fmt.Errorf("%w: clock.scale %g outside [%g, %g]",
			ErrInvalidConfig, cfg.Clock.Scale, gameclock.MinScale, gameclock.MaxScale)
	}
	if cfg.Clock.TickInterval <= 0 {
		return fmt.Errorf("%w: clock.tick_interval must be positive", ErrInvalidConfig)
	}
	if cfg.Clock.StartAbsolute < 0 {
		return fmt.Errorf("%w: clock.start_absolute must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
