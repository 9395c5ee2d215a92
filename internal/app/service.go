// Package service wires the console's stores, rankers and workers into the
// operations the HTTP API exposes.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/talentdesk/internal/adapters/mq/queue"
	"github.com/okian/talentdesk/internal/adapters/mq/worker"
	"github.com/okian/talentdesk/internal/adapters/repository"
	"github.com/okian/talentdesk/internal/domain/dedupe"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/pipeline"
	"github.com/okian/talentdesk/internal/domain/portal"
	"github.com/okian/talentdesk/internal/domain/similarity"
	"github.com/okian/talentdesk/internal/domain/wizard"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

// ErrNotStarted is returned by operations called before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the console.
type Service struct {
	mu sync.RWMutex

	store    *repository.MemoryStore
	ranker   similarity.Ranker
	wizards  *wizard.Registry
	settings *portal.Console
	deduper  dedupe.Deduper
	notifyQ  queue.Queue
	outbox   *worker.Outbox
	pool     *worker.Pool

	// submitted maps a wizard session to the candidate it created.
	submitted sync.Map

	workerCount  int
	queueSize    int
	dedupeSize   int
	wizardMax    int
	notifyRate   float64
	notifyBurst  int
	outboxSize   int
	similarLimit int
	topMaxLimit  int
	minLatency   time.Duration
	maxLatency   time.Duration
	saveNotice   time.Duration
	seed         *repository.Seed
	now          func() time.Time
	actor        string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of notification workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the notification queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many submission keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithWizardSessionsMax bounds open application sessions. The oldest session
// is evicted first. n <= 0 leaves sessions unbounded.
func WithWizardSessionsMax(n int) Option {
	return func(s *Service) {
		s.wizardMax = n
	}
}

// WithNotifyRate paces notification delivery. perSecond <= 0 disables pacing.
func WithNotifyRate(perSecond float64, burst int) Option {
	return func(s *Service) {
		s.notifyRate = perSecond
		s.notifyBurst = burst
	}
}

// WithSimilarLimit caps the similar-candidates list.
func WithSimilarLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.similarLimit = n
		}
	}
}

// WithTopMaxLimit caps the n accepted by TopCandidates.
func WithTopMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topMaxLimit = n
		}
	}
}

// WithSimulatedLatency delays similarity ranking by a random duration in [minLatency, maxLatency].
func WithSimulatedLatency(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// WithSaveNotice sets how long the portal "saved" notice stays up.
func WithSaveNotice(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.saveNotice = d
		}
	}
}

// WithSeed replaces the embedded mock data.
func WithSeed(seed repository.Seed) Option {
	return func(s *Service) { s.seed = &seed }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  2,
		queueSize:    1000,
		dedupeSize:   10000,
		wizardMax:    10000,
		notifyRate:   20,
		notifyBurst:  5,
		outboxSize:   1000,
		similarLimit: 10,
		topMaxLimit:  100,
		saveNotice:   portal.DefaultSaveNotice,
		now:          time.Now,
		actor:        "recruiter",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting console service...")

	storeOpts := []repository.Option{repository.WithClock(s.now)}
	if s.seed != nil {
		storeOpts = append(storeOpts, repository.WithSeed(*s.seed))
	}
	store, err := repository.NewMemoryStore(ctx, storeOpts...)
	if err != nil {
		return err
	}
	s.store = store

	s.ranker = similarity.NewScorer(
		similarity.WithLimit(s.similarLimit),
		similarity.WithLatencyRange(s.minLatency, s.maxLatency),
	)
	s.wizards = wizard.NewRegistry(
		wizard.WithMaxSessions(s.wizardMax),
		wizard.WithEvictHook(s.evictSession),
	)
	s.settings = portal.NewConsole(portal.WithSaveNotice(s.saveNotice))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.notifyQ = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.outbox = worker.NewOutbox(s.outboxSize)
	s.pool = worker.NewPool(s.workerCount, s.notifyQ, s.outbox,
		worker.WithRate(s.notifyRate, s.notifyBurst),
		worker.WithPoolLogger(s.logger.Named("notify")),
	)
	// Workers outlive the start context so Stop can drain the queue.
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	metrics.UpdateCandidateTotal(s.store.Count(ctx))
	s.logger.Info(ctx, "console service started",
		logger.Int("candidates", s.store.Count(ctx)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// evictSession forgets a session dropped by the registry bound.
func (s *Service) evictSession(id string) {
	s.submitted.Delete(id)
	metrics.RecordWizardTransition("evict")
}

// Stop drains pending notifications and releases background goroutines.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping console service...")

	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "notification pool shutdown", logger.Error(err))
		}
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "console service stopped")
}

// ready returns ErrNotStarted until Start has completed.
func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if !s.started {
		return stats
	}
	stats["workerCount"] = s.pool.Size()
	stats["wizardSessionsMax"] = s.wizardMax

	candidates := s.store.Candidates(ctx)
	offers := make(map[model.OfferStatus]int)
	for _, o := range s.store.Offers(ctx, "") {
		offers[o.Status]++
	}
	scheduled := 0
	for _, iv := range s.store.Interviews(ctx, "") {
		if iv.Status == model.InterviewScheduled {
			scheduled++
		}
	}
	openJobs := 0
	for _, j := range s.store.Jobs(ctx) {
		if j.Status == model.JobOpen {
			openJobs++
		}
	}
	queueLen := s.notifyQ.Len(ctx)

	stats["totalCandidates"] = len(candidates)
	stats["byStage"] = pipeline.Counts(candidates)
	stats["openJobs"] = openJobs
	stats["scheduledInterviews"] = scheduled
	stats["offersByStatus"] = offers
	stats["queueLength"] = queueLen
	stats["notificationsDelivered"] = s.outbox.Len()
	stats["wizardSessions"] = s.wizards.Len()
	stats["submittedApplications"] = s.deduper.Size()

	metrics.UpdateQueueSize(queueLen)
	metrics.UpdateCandidateTotal(len(candidates))
	metrics.UpdateWizardSessions(s.wizards.Len())
	return stats
}

// Notifications lists delivered notifications, newest first.
func (s *Service) Notifications(_ context.Context, candidateID string) ([]model.Notification, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.outbox.List(candidateID), nil
}
