package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/nora/pkg/logger"
)

// Run executes every scenario step in order and stops at the first failure.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = DefaultParallel
	}

	log := logger.Named("smoke")
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	stats := &Stats{StartTime: time.Now()}
	defer func() {
		stats.EndTime = time.Now()
		stats.Duration = stats.EndTime.Sub(stats.StartTime)
		stats.Requests = client.requests.Load()
	}()

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Bool("mobile", cfg.Mobile),
		logger.Int("parallel", cfg.Parallel),
	)

	for _, s := range scenario(cfg) {
		stats.Steps++
		r, err := client.do(ctx, s.method, s.path, s.body)
		if err != nil {
			return stats, fmt.Errorf("step %q: %w", s.name, err)
		}
		if cfg.Verbose {
			log.Debug(ctx, "response", logger.String("step", s.name), logger.Int("status", r.Status), logger.String("body", truncate(r.Body)))
		}
		if r.Status != s.status {
			return stats, fmt.Errorf("step %q: expected status %d, got %d: %s", s.name, s.status, r.Status, truncate(r.Body))
		}
		if s.check != nil {
			if err := s.check(r); err != nil {
				return stats, fmt.Errorf("step %q: %w", s.name, err)
			}
		}
		stats.Passed++
		log.Info(ctx, "step passed", logger.String("step", s.name))
	}

	stats.Steps++
	if err := burst(ctx, client, cfg); err != nil {
		return stats, fmt.Errorf("step %q: %w", "concurrent duplicate burst", err)
	}
	stats.Passed++

	log.Info(ctx, "smoke run completed",
		logger.Int("steps", stats.Steps),
		logger.Int("passed", stats.Passed),
	)
	return stats, nil
}
