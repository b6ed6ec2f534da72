// Package smoke drives a running server through the matching scenarios over
// HTTP and verifies each response.
package smoke

import "time"

// Default configuration constants.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultTimeout  = 10 * time.Second
	DefaultParallel = 8
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Timeout  time.Duration // HTTP request timeout
	Parallel int           // Concurrent duplicate submissions
	Mobile   bool          // Device class sent with navigation intents
	Verbose  bool          // Log every response body
}

// Stats holds run statistics.
type Stats struct {
	Steps     int
	Passed    int
	Requests  int64
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
