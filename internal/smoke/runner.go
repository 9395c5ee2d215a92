// Package smoke drives a running console through its main flows and reports
// pass/fail counts.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/talentdesk/pkg/logger"
)

// Error constants
var (
	ErrChecksFailed = errors.New("smoke checks failed")
)

// Run executes every check against config.BaseURL and returns the stats.
// Read-only checks run concurrently; mutating checks run afterwards in order.
func Run(ctx context.Context, config Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	c := newClient(config.BaseURL, config.Timeout, stats)
	log := logger.Named("smoke").With(logger.String("run", c.run))

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("concurrency", config.Concurrency),
		logger.Int("rounds", config.Rounds))

	if err := checkHealth(ctx, c); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	var failed []Check
	record := func(ch Check) {
		if ch.Err != nil {
			stats.Failed.Add(1)
			failed = append(failed, ch)
			log.Warn(ctx, "check failed", logger.String("check", ch.Name), logger.Error(ch.Err))
			return
		}
		stats.Passed.Add(1)
		if config.Verbose {
			log.Info(ctx, "check passed", logger.String("check", ch.Name), logger.Duration("took", ch.Duration))
		}
	}
	timed := func(name string, fn func() error) Check {
		start := time.Now()
		err := fn()
		return Check{Name: name, Err: err, Duration: time.Since(start)}
	}

	for round := 0; round < max(config.Rounds, 1); round++ {
		results := make([]Check, max(config.Concurrency, 1)*3)
		var g errgroup.Group
		for i := 0; i < max(config.Concurrency, 1); i++ {
			for j, check := range []struct {
				name string
				fn   func(context.Context) error
			}{
				{"list", func(ctx context.Context) error { return checkList(ctx, c) }},
				{"similar", func(ctx context.Context) error { return checkSimilar(ctx, c, config.Candidate) }},
				{"top", func(ctx context.Context) error { return checkTop(ctx, c) }},
			} {
				slot := i*3 + j
				g.Go(func() error {
					results[slot] = timed(check.name, func() error { return check.fn(ctx) })
					return nil
				})
			}
		}
		_ = g.Wait()
		for _, r := range results {
			record(r)
		}
	}

	record(timed("stage", func() error { return checkStage(ctx, c, config.Candidate) }))
	record(timed("wizard", func() error { return checkWizard(ctx, c, config.JobID) }))

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "smoke run finished",
		logger.Int("passed", int(stats.Passed.Load())),
		logger.Int("failed", int(stats.Failed.Load())),
		logger.Int("requests", int(stats.Requests.Load())),
		logger.Duration("duration", stats.Duration))

	if len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for _, f := range failed {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, f.Err))
		}
		return stats, fmt.Errorf("%w: %w", ErrChecksFailed, errors.Join(errs...))
	}
	return stats, nil
}
