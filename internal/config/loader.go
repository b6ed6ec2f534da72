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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if NORA_CONFIG is set
//  3. env (prefix NORA_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("NORA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// NORA_SEED_CATALOG -> seed_catalog; underscores are kept to match the tags.
	envProvider := env.Provider("NORA_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "nora_")
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

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxRosterSize < 0:
		return fmt.Errorf("%w: max_roster_size must not be negative", ErrInvalidConfig)
	}
	for i := 1; i < len(c.HTTPLatencyBuckets); i++ {
		if c.HTTPLatencyBuckets[i] <= c.HTTPLatencyBuckets[i-1] {
			return fmt.Errorf("%w: http_latency_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}
