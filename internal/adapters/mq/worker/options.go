// Package worker delivers queued notifications to the outbox.
package worker

import (
	"golang.org/x/time/rate"

	"github.com/okian/talentdesk/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithLimiter paces deliveries. Workers of a pool share one limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.limiter = l
		}
	}
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithRate limits the pool to perSecond deliveries with the given burst.
// perSecond <= 0 removes the limit.
func WithRate(perSecond float64, burst int) PoolOption {
	return func(p *Pool) {
		if perSecond <= 0 {
			p.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithPoolLogger sets the pool logger; workers derive named loggers from it.
func WithPoolLogger(l logger.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
