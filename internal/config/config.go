// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and NORA_* env vars.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Mobile is the device class assumed until the host reports one.
	Mobile bool `koanf:"mobile"`

	// SeedCatalog loads the demo catalog at startup.
	SeedCatalog bool `koanf:"seed_catalog"`

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsSubsystem follows the namespace in metric names.
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// HTTPLatencyBuckets overrides the HTTP latency histogram buckets, in
	// milliseconds. Empty keeps the Prometheus defaults.
	HTTPLatencyBuckets []float64 `koanf:"http_latency_buckets"`

	// MaxRosterSize caps applications accepted per project; 0 disables the cap.
	MaxRosterSize int `koanf:"max_roster_size"`
}

// New creates a Config populated with defaults. The context is reserved for
// future sources and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Mobile:           false,
		SeedCatalog:      true,
		MetricsNamespace: "nora",
		MetricsSubsystem: "core",
		MaxRosterSize:    0,
	}
}
