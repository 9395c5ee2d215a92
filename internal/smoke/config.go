package smoke

import (
	"sync/atomic"
	"time"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL     string        // Base URL of the console
	Candidate   string        // Candidate used for read-only checks
	JobID       string        // Job the wizard walk applies to
	Concurrency int           // Parallel read checks per round
	Rounds      int           // Rounds of read checks
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool
}

// Stats holds run statistics.
type Stats struct {
	Passed    atomic.Int64
	Failed    atomic.Int64
	Requests  atomic.Int64
	StartTime time.Time
	Duration  time.Duration
}

// Check is the outcome of one named check.
type Check struct {
	Name     string
	Err      error
	Duration time.Duration
}
