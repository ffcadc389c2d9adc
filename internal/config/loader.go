package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "UFCRADAR_"
	envFileVar = "UFCRADAR_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if UFCRADAR_CONFIG is set
//  3. env (prefix UFCRADAR_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// UFCRADAR_DATA_DIR -> data_dir. Keys are flat, so underscores are preserved.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EventsFile == "" || c.ResultsFile == "" || c.StatsFile == "":
		return fmt.Errorf("%w: events_file, results_file and stats_file are required", ErrInvalidConfig)
	case c.DefaultWindow < 0:
		return fmt.Errorf("%w: default_window must not be negative", ErrInvalidConfig)
	case c.MaxWindow < 0:
		return fmt.Errorf("%w: max_window must not be negative", ErrInvalidConfig)
	case c.MaxWindow > 0 && c.DefaultWindow > c.MaxWindow:
		return fmt.Errorf("%w: default_window exceeds max_window", ErrInvalidConfig)
	case c.WatchDebounceMS < 0:
		return fmt.Errorf("%w: watch_debounce_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
