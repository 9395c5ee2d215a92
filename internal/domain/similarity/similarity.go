// Package similarity ranks candidates by how closely they resemble a target.
//
// The score is a fixed additive heuristic. It is kept behind Ranker so a
// real scoring service can replace it without touching callers.
package similarity

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/okian/talentdesk/internal/domain/model"
)

// Weights of each term.
const (
	titleExactPoints   = 25
	titlePartialPoints = 15
	skillPoints        = 5
	skillCap           = 25
	experiencePoints   = 15
	experienceStep     = 5
	aiScorePoints      = 15
	aiScoreDivisor     = 3
	sourcePoints       = 10
	nationalityPoints  = 10
	maxScore           = 100
	defaultLimit       = 10
)

// Match is a pool candidate annotated with its similarity to the target.
type Match struct {
	Candidate model.Candidate `json:"candidate"`
	Score     float64         `json:"similarityScore"`
}

// Ranker orders a candidate pool by similarity.
type Ranker interface {
	Rank(ctx context.Context, target model.Candidate, pool []model.Candidate) ([]Match, error)
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLimit caps the number of matches returned.
func WithLimit(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLatencyRange makes Rank wait a random duration in [minLatency, maxLatency]
// before answering. A zero max disables the wait.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Scorer) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// Scorer is the heuristic Ranker.
type Scorer struct {
	limit      int
	minLatency time.Duration
	maxLatency time.Duration
}

// NewScorer creates a Scorer returning at most ten matches with no delay.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{limit: defaultLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank scores every pool member except the target, sorts descending and
// keeps the top matches. Equal scores keep their pool order.
func (s *Scorer) Rank(ctx context.Context, target model.Candidate, pool []model.Candidate) ([]Match, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(pool))
	for _, c := range pool {
		if c.ID == target.ID {
			continue
		}
		matches = append(matches, Match{Candidate: c, Score: Score(target, c)})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(matches) > s.limit {
		matches = matches[:s.limit]
	}
	return matches, nil
}

func (s *Scorer) wait(ctx context.Context) error {
	if s.maxLatency <= 0 {
		return nil
	}
	d := s.minLatency
	if span := s.maxLatency - s.minLatency; span > 0 {
		d += rand.N(span) //nolint:gosec // simulated latency only
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("similarity ranking cancelled: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

// Score returns how similar other is to target, in [0, 100].
func Score(target, other model.Candidate) float64 {
	score := titleScore(target.JobTitle, other.JobTitle) +
		skillScore(target.Skills.Technical, other.Skills.Technical) +
		experienceScore(len(target.Experience), len(other.Experience)) +
		math.Max(0, aiScorePoints-math.Abs(target.AIScore-other.AIScore)/aiScoreDivisor)

	if target.Source != "" && target.Source == other.Source {
		score += sourcePoints
	}
	if target.Nationality != "" && strings.EqualFold(target.Nationality, other.Nationality) {
		score += nationalityPoints
	}
	return math.Max(0, math.Min(maxScore, score))
}

func titleScore(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	switch {
	case a == "" || b == "":
		return 0
	case a == b:
		return titleExactPoints
	case strings.Contains(a, b) || strings.Contains(b, a):
		return titlePartialPoints
	}
	return 0
}

func skillScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(a))
	for _, s := range a {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		k := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := have[k]; ok && k != "" {
			shared++
		}
	}
	return math.Min(skillCap, float64(shared*skillPoints))
}

// experienceScore only applies when both profiles list experience.
func experienceScore(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return math.Max(0, float64(experiencePoints-experienceStep*diff))
}
