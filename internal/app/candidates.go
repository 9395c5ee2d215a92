package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/talentdesk/internal/adapters/repository"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/pipeline"
	"github.com/okian/talentdesk/internal/domain/similarity"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

// ListCandidates returns the candidates passing filter in sort order.
func (s *Service) ListCandidates(ctx context.Context, filter pipeline.Filter, sort pipeline.Sort) ([]model.Candidate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out := filter.Apply(s.store.Candidates(ctx))
	sort.Apply(out)
	return out, nil
}

// Candidate returns one candidate.
func (s *Service) Candidate(ctx context.Context, id string) (model.Candidate, error) {
	if err := s.ready(); err != nil {
		return model.Candidate{}, err
	}
	return s.store.Candidate(ctx, id)
}

// SimilarCandidates ranks every other candidate by similarity to id.
func (s *Service) SimilarCandidates(ctx context.Context, id string) ([]similarity.Match, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	target, err := s.store.Candidate(ctx, id)
	if err != nil {
		return nil, err
	}
	pool := s.store.Candidates(ctx)

	start := time.Now()
	matches, err := s.ranker.Rank(ctx, target, pool)
	if err != nil {
		metrics.RecordErrorByComponent("similarity", "cancelled")
		return nil, err
	}
	metrics.RecordSimilarityRanking(float64(time.Since(start).Microseconds())/1000, len(pool))
	return matches, nil
}

// boardFor binds the pipeline callbacks to ctx.
func (s *Service) boardFor(ctx context.Context) pipeline.Board {
	return pipeline.Board{
		OnStageChange: func(id string, stage model.Stage) error {
			return s.applyStageChange(ctx, id, stage)
		},
		OnReject: func(id, reason string, notify bool) error {
			return s.applyRejection(ctx, id, reason, notify)
		},
	}
}

// ChangeStage moves a candidate to stage and records it on the timeline.
func (s *Service) ChangeStage(ctx context.Context, id string, stage model.Stage) (model.Candidate, error) {
	if err := s.ready(); err != nil {
		return model.Candidate{}, err
	}
	if err := s.boardFor(ctx).Move(id, stage); err != nil {
		return model.Candidate{}, err
	}
	return s.store.Candidate(ctx, id)
}

func (s *Service) applyStageChange(ctx context.Context, id string, stage model.Stage) error {
	before, err := s.store.Candidate(ctx, id)
	if err != nil {
		return err
	}
	if before.Stage == stage {
		return nil
	}
	if _, err := s.store.UpdateStage(ctx, id, stage); err != nil {
		return err
	}
	s.record(ctx, id, model.ActivityStageChanged, fmt.Sprintf("Moved from %s to %s", before.Stage, stage))
	metrics.RecordStageChange(string(stage))
	s.logger.Info(ctx, "candidate stage changed",
		logger.String("candidate", id),
		logger.String("from", string(before.Stage)),
		logger.String("to", string(stage)),
	)
	return nil
}

// RejectCandidate moves a candidate to rejected and optionally emails them.
func (s *Service) RejectCandidate(ctx context.Context, id, reason string, notify bool) (model.Candidate, error) {
	if err := s.ready(); err != nil {
		return model.Candidate{}, err
	}
	if err := s.boardFor(ctx).Reject(id, reason, notify); err != nil {
		return model.Candidate{}, err
	}
	return s.store.Candidate(ctx, id)
}

func (s *Service) applyRejection(ctx context.Context, id, reason string, notify bool) error {
	c, err := s.store.UpdateStage(ctx, id, model.StageRejected)
	if err != nil {
		return err
	}
	desc := "Rejected"
	if reason != "" {
		desc = "Rejected: " + reason
	}
	s.record(ctx, id, model.ActivityRejected, desc)
	notified := false
	if notify {
		notified = s.notify(ctx, model.NotifyRejection, c, reason)
		if notified {
			s.record(ctx, id, model.ActivityEmailSent, "Rejection email queued")
		}
	}
	metrics.RecordRejection(notified)
	s.logger.Info(ctx, "candidate rejected",
		logger.String("candidate", id),
		logger.String("reason", reason),
		logger.Bool("notify", notify),
	)
	return nil
}

// TopCandidates returns the n best candidates by AI score.
func (s *Service) TopCandidates(ctx context.Context, n int) ([]repository.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if n < 1 || n > s.topMaxLimit {
		return nil, fmt.Errorf("%w: n must be within [1,%d]", repository.ErrInvalidLimit, s.topMaxLimit)
	}
	return s.store.TopN(ctx, n)
}

// CandidateRank returns a candidate's position by AI score.
func (s *Service) CandidateRank(ctx context.Context, id string) (repository.Entry, error) {
	if err := s.ready(); err != nil {
		return repository.Entry{}, err
	}
	return s.store.Rank(ctx, id)
}

// PipelineCounts returns per-stage totals of the candidates passing filter.
func (s *Service) PipelineCounts(ctx context.Context, filter pipeline.Filter) (map[model.Stage]int, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return pipeline.Counts(filter.Apply(s.store.Candidates(ctx))), nil
}

// Pipeline groups the candidates passing filter by stage.
func (s *Service) Pipeline(ctx context.Context, filter pipeline.Filter, sort pipeline.Sort) ([]pipeline.Column, error) {
	cs, err := s.ListCandidates(ctx, filter, sort)
	if err != nil {
		return nil, err
	}
	return s.boardFor(ctx).Columns(cs), nil
}

// Activity returns a candidate's timeline, newest first.
func (s *Service) Activity(ctx context.Context, candidateID string) ([]model.ActivityItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.store.Candidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.store.Activity(ctx, candidateID), nil
}

// Jobs lists requisitions, optionally filtered by status and department.
func (s *Service) Jobs(ctx context.Context, status model.JobStatus, department string) ([]model.JobRequisition, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all := s.store.Jobs(ctx)
	out := make([]model.JobRequisition, 0, len(all))
	for _, j := range all {
		if status != "" && j.Status != status {
			continue
		}
		if department != "" && j.Department != department {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}
