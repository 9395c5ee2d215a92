package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/talentdesk/internal/adapters/mq/queue"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

const (
	defaultWorkerCount  = 2
	poolShutdownTimeout = 30 * time.Second
)

// Notification is what workers read off the queue.
type Notification = queue.Notification

// Queue defines how workers receive notifications.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Notification
}

// Worker delivers notifications.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue drains.
	Run(ctx context.Context)

	// Shutdown stops the worker without draining.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	deliverer Deliverer
	limiter   *rate.Limiter
	name      string
	now       func() time.Time

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker reading from q and delivering to d.
func NewInMemoryWorker(q Queue, d Deliverer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		deliverer: d,
		limiter:   rate.NewLimiter(rate.Inf, 0),
		name:      "worker",
		now:       time.Now,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	items := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case n, ok := <-items:
			if !ok {
				return
			}
			if err := w.deliver(ctx, n); err != nil {
				w.logger.Error(ctx, "notification delivery failed",
					logger.String("notification", n.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker loop.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.stop()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) stop() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) deliver(ctx context.Context, n Notification) error { //nolint:gocritic // value semantics
	if err := w.limiter.Wait(ctx); err != nil {
		metrics.RecordNotificationDropped("rate_wait")
		return fmt.Errorf("wait for delivery slot: %w", err)
	}

	start := w.now()
	n.DeliveredAt = start
	if err := w.deliverer.Deliver(ctx, n); err != nil {
		metrics.RecordNotificationDropped("deliver_error")
		metrics.RecordErrorByComponent("worker", "deliver_error")
		return fmt.Errorf("deliver %s: %w", n.ID, err)
	}
	metrics.RecordNotificationDelivered(string(n.Kind), float64(time.Since(start).Microseconds())/1000)

	w.logger.Info(ctx, "notification delivered",
		logger.String("notification", n.ID),
		logger.String("kind", string(n.Kind)),
		logger.String("candidate", n.CandidateID),
		logger.String("to", n.To),
		logger.String("subject", n.Subject),
	)
	return nil
}

// Pool runs several workers over one queue and one limiter.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewPool creates workerCount workers. workerCount < 1 uses two.
func NewPool(workerCount int, q Queue, d Deliverer, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  logger.Get().Named("notify-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := range workerCount {
		p.workers[i] = NewInMemoryWorker(q, d,
			WithName("worker-"+strconv.Itoa(i)),
			WithLimiter(p.limiter),
			WithLogger(p.logger),
		)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start runs every worker in its own goroutine.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			w.stop()
		}
	}
	if timedOut {
		return fmt.Errorf("notification pool shutdown: %w", shutdownCtx.Err())
	}
	return nil
}
