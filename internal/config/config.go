// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Counter backends.
const (
	CounterSQLite  = "sqlite"
	CounterJSONBin = "jsonbin"
)

// Config controls the gpacalc server.
type Config struct {
	Port     int    `env:"GPACALC_PORT"      envDefault:"8080"`
	DBPath   string `env:"GPACALC_DB_PATH"   envDefault:"./data/gpacalc.db"`
	LogLevel string `env:"LOG_LEVEL"         envDefault:"info"`

	// CounterBackend selects where visits are counted: "sqlite" (atomic,
	// default) or "jsonbin" (remote document store).
	CounterBackend string        `env:"GPACALC_COUNTER_BACKEND" envDefault:"sqlite"`
	CounterURL     string        `env:"GPACALC_COUNTER_URL"`
	CounterKey     string        `env:"GPACALC_COUNTER_MASTER_KEY"`
	CounterTimeout time.Duration `env:"GPACALC_COUNTER_TIMEOUT" envDefault:"5s"`

	SessionTTL           time.Duration `env:"GPACALC_SESSION_TTL"            envDefault:"30m"`
	SessionPruneInterval time.Duration `env:"GPACALC_SESSION_PRUNE_INTERVAL" envDefault:"1m"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option combinations that env tags cannot express.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.CounterBackend {
	case CounterSQLite:
	case CounterJSONBin:
		if c.CounterURL == "" {
			return fmt.Errorf("GPACALC_COUNTER_URL is required for the %s counter", CounterJSONBin)
		}
	default:
		return fmt.Errorf("unknown counter backend %q", c.CounterBackend)
	}
	if c.CounterTimeout <= 0 {
		return fmt.Errorf("counter timeout must be positive")
	}
	if c.SessionTTL > 0 && c.SessionPruneInterval <= 0 {
		return fmt.Errorf("session prune interval must be positive")
	}
	return nil
}
