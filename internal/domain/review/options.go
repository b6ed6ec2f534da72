package review

import "time"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMaxRoster caps the number of applications per project. Zero or less
// leaves rosters unbounded.
func WithMaxRoster(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRoster = n
		}
	}
}

// WithClock sets the time source stamped on new applications.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
