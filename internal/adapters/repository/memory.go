package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/pkg/metrics"
)

// MemoryStore is the RWMutex-guarded Store used by the console.
type MemoryStore struct {
	mu         sync.RWMutex
	order      []string
	candidates map[string]model.Candidate
	jobs       []model.JobRequisition
	feedback   []model.InterviewFeedback
	activity   []model.ActivityItem
	interviews []model.Interview
	offers     []model.Offer
	board      *ScoreBoard

	seed                  *Seed
	now                   func() time.Time
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store from the embedded fixtures or WithSeed and
// starts a background metrics updater bound to ctx.
func NewMemoryStore(ctx context.Context, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		candidates:            make(map[string]model.Candidate),
		board:                 NewScoreBoard(),
		now:                   time.Now,
		metricsUpdateInterval: 5 * time.Second,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	seed := s.seed
	if seed == nil {
		def, err := DefaultSeed()
		if err != nil {
			return nil, err
		}
		seed = &def
	}
	for _, c := range seed.Candidates {
		if err := s.AddCandidate(ctx, c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFixtures, err)
		}
	}
	s.jobs = slices.Clone(seed.Jobs)
	s.feedback = slices.Clone(seed.Feedback)
	s.activity = slices.Clone(seed.Activity)
	s.interviews = slices.Clone(seed.Interviews)
	s.offers = slices.Clone(seed.Offers)
	s.seed = nil

	s.startMetricsUpdater(ctx)
	return s, nil
}

// Close stops the background updater.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateCandidateTotal(s.Count(ctx))
			}
		}
	}()
}

func observe(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func (s *MemoryStore) Candidates(_ context.Context) []model.Candidate {
	defer observe(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Candidate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.candidates[id].Clone())
	}
	return out
}

func (s *MemoryStore) Candidate(_ context.Context, id string) (model.Candidate, error) {
	defer observe(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Candidate{}, fmt.Errorf("%w: candidate %s", ErrNotFound, id)
	}
	return c.Clone(), nil
}

func (s *MemoryStore) AddCandidate(_ context.Context, c model.Candidate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	if _, ok := s.candidates[c.ID]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: candidate %s", ErrConflict, c.ID)
	}
	s.candidates[c.ID] = c.Clone()
	s.order = append(s.order, c.ID)
	n := len(s.order)
	s.mu.Unlock()

	s.board.Upsert(c.ID, c.AIScore)
	metrics.UpdateCandidateTotal(n)
	return nil
}

func (s *MemoryStore) UpdateStage(_ context.Context, id string, stage model.Stage) (model.Candidate, error) {
	if !stage.IsValid() {
		return model.Candidate{}, fmt.Errorf("%w: stage %q", model.ErrInvalidEnum, stage)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok {
		return model.Candidate{}, fmt.Errorf("%w: candidate %s", ErrNotFound, id)
	}
	c.Stage = stage
	s.candidates[id] = c
	return c.Clone(), nil
}

func (s *MemoryStore) Jobs(_ context.Context) []model.JobRequisition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.jobs)
}

func (s *MemoryStore) Job(_ context.Context, id string) (model.JobRequisition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return model.JobRequisition{}, fmt.Errorf("%w: job %s", ErrNotFound, id)
}

func (s *MemoryStore) Activity(_ context.Context, candidateID string) []model.ActivityItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ActivityItem, 0)
	for _, a := range s.activity {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b model.ActivityItem) int { return b.At.Compare(a.At) })
	return out
}

func (s *MemoryStore) AddActivity(_ context.Context, a model.ActivityItem) {
	if a.At.IsZero() {
		a.At = s.now()
	}
	s.mu.Lock()
	s.activity = append(s.activity, a)
	s.mu.Unlock()
}

func (s *MemoryStore) Feedback(_ context.Context, candidateID string) []model.InterviewFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InterviewFeedback, 0)
	for _, f := range s.feedback {
		if f.CandidateID == candidateID {
			f.Strengths = slices.Clone(f.Strengths)
			f.Concerns = slices.Clone(f.Concerns)
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(a, b model.InterviewFeedback) int { return b.Date.Compare(a.Date) })
	return out
}

func (s *MemoryStore) AddFeedback(_ context.Context, f model.InterviewFeedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Date.IsZero() {
		f.Date = s.now()
	}
	s.mu.Lock()
	s.feedback = append(s.feedback, f)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Interviews(_ context.Context, candidateID string) []model.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		if candidateID == "" || iv.CandidateID == candidateID {
			iv.Interviewers = slices.Clone(iv.Interviewers)
			out = append(out, iv)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Interview) int { return a.ScheduledAt.Compare(b.ScheduledAt) })
	return out
}

func (s *MemoryStore) AddInterview(_ context.Context, iv model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[iv.CandidateID]; !ok {
		return fmt.Errorf("%w: candidate %s", ErrNotFound, iv.CandidateID)
	}
	s.interviews = append(s.interviews, iv)
	return nil
}

func (s *MemoryStore) UpdateInterview(_ context.Context, id string, fn func(*model.Interview) error) (model.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.interviews, func(iv model.Interview) bool { return iv.ID == id })
	if i < 0 {
		return model.Interview{}, fmt.Errorf("%w: interview %s", ErrNotFound, id)
	}
	iv := s.interviews[i]
	if err := fn(&iv); err != nil {
		return model.Interview{}, err
	}
	s.interviews[i] = iv
	return iv, nil
}

func (s *MemoryStore) Offers(_ context.Context, candidateID string) []model.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		if candidateID == "" || o.CandidateID == candidateID {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Offer) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}

func (s *MemoryStore) Offer(_ context.Context, id string) (model.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Offer{}, fmt.Errorf("%w: offer %s", ErrNotFound, id)
}

func (s *MemoryStore) AddOffer(_ context.Context, o model.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[o.CandidateID]; !ok {
		return fmt.Errorf("%w: candidate %s", ErrNotFound, o.CandidateID)
	}
	s.offers = append(s.offers, o)
	return nil
}

func (s *MemoryStore) UpdateOffer(_ context.Context, id string, fn func(*model.Offer) error) (model.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.offers, func(o model.Offer) bool { return o.ID == id })
	if i < 0 {
		return model.Offer{}, fmt.Errorf("%w: offer %s", ErrNotFound, id)
	}
	o := s.offers[i]
	if err := fn(&o); err != nil {
		return model.Offer{}, err
	}
	s.offers[i] = o
	return o, nil
}

func (s *MemoryStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	defer observe(time.Now())
	out, err := s.board.TopN(n)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range out {
		out[i].Name = s.candidates[out[i].CandidateID].FullName()
	}
	return out, nil
}

func (s *MemoryStore) Rank(_ context.Context, id string) (Entry, error) {
	defer observe(time.Now())
	e, err := s.board.Rank(id)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, fmt.Errorf("%w: candidate %s", err, id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e.Name = s.candidates[id].FullName()
	return e, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
