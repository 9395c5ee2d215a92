package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/talentdesk/internal/smoke"
	"github.com/okian/talentdesk/pkg/logger"
)

// Default configuration constants.
const (
	defaultConcurrency = 4
	defaultRounds      = 3
	defaultTimeout     = 10 * time.Second
	defaultRunTimeout  = 2 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the console")
		candidate   = flag.String("candidate", "cand-001", "Candidate used for read and stage checks")
		jobID       = flag.String("job", "job-be", "Open job the application walk applies to")
		concurrency = flag.Int("concurrency", defaultConcurrency, "Parallel read checks per round")
		rounds      = flag.Int("rounds", defaultRounds, "Rounds of read checks")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		jsonLogs    = flag.Bool("json", false, "Emit JSON logs")
		verbose     = flag.Bool("verbose", false, "Log passing checks too")
	)
	flag.Parse()

	format := logger.FormatText
	if *jsonLogs {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	stats, err := smoke.Run(ctx, smoke.Config{
		BaseURL:     *baseURL,
		Candidate:   *candidate,
		JobID:       *jobID,
		Concurrency: *concurrency,
		Rounds:      *rounds,
		Timeout:     *timeout,
		Verbose:     *verbose,
	})
	fmt.Printf("passed=%d failed=%d requests=%d duration=%s\n",
		stats.Passed.Load(), stats.Failed.Load(), stats.Requests.Load(), stats.Duration.Round(time.Millisecond))
	if err != nil {
		cancel()
		logger.Get().Fatal(ctx, "smoke run failed", logger.Error(err))
	}
}
