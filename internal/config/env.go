// Package config reads process configuration from TURING_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment layer of the CLI. Flags override it.
type Config struct {
	// Dir is the Loam repository holding machine documents. Empty serves the built-in library.
	Dir          string `env:"TURING_DIR"`
	TapeCapacity int    `env:"TURING_TAPE_CAPACITY"`
	LogLevel     string `env:"TURING_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"TURING_LOG_FORMAT" envDefault:"text"`
	Addr         string `env:"TURING_ADDR" envDefault:":8080"`

	// Store selection: Redis wins over SQLite when both are set.
	RedisAddr   string        `env:"TURING_REDIS_ADDR"`
	RedisPrefix string        `env:"TURING_REDIS_PREFIX" envDefault:"turing:run:"`
	CacheTTL    time.Duration `env:"TURING_CACHE_TTL" envDefault:"0s"`
	SQLitePath  string        `env:"TURING_SQLITE_PATH"`

	Concurrency int `env:"TURING_CONCURRENCY" envDefault:"4"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config and checks its ranges.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can use.
func (c Config) Validate() error {
	if c.TapeCapacity < 0 {
		return fmt.Errorf("TURING_TAPE_CAPACITY must not be negative, got %d", c.TapeCapacity)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("TURING_CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("TURING_CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("TURING_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
