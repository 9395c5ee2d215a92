package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

// Feedback returns the evaluations recorded for a candidate, newest first.
// Unknown candidates yield an empty list.
func (s *Service) Feedback(ctx context.Context, candidateID string) ([]model.InterviewFeedback, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.Feedback(ctx, candidateID), nil
}

// AddFeedback stores an evaluation and assigns it an id.
func (s *Service) AddFeedback(ctx context.Context, f model.InterviewFeedback) (model.InterviewFeedback, error) {
	if err := s.ready(); err != nil {
		return model.InterviewFeedback{}, err
	}
	if strings.TrimSpace(f.CandidateID) == "" {
		return model.InterviewFeedback{}, fmt.Errorf("%w: candidateId is required", model.ErrInvalidValue)
	}
	f.ID = uuid.NewString()
	if f.Date.IsZero() {
		f.Date = s.now()
	}
	if err := s.store.AddFeedback(ctx, f); err != nil {
		return model.InterviewFeedback{}, err
	}
	if _, err := s.store.Candidate(ctx, f.CandidateID); err == nil {
		s.record(ctx, f.CandidateID, model.ActivityFeedbackAdded,
			fmt.Sprintf("%s rated %d/5 (%s)", f.Interviewer, f.Rating, f.Recommendation))
	}
	s.logger.Info(ctx, "feedback added",
		logger.String("feedback", f.ID),
		logger.String("candidate", f.CandidateID),
		logger.Int("rating", f.Rating),
	)
	return f, nil
}

// InterviewRequest describes an interview to schedule.
type InterviewRequest struct {
	CandidateID  string              `json:"candidateId"`
	JobID        string              `json:"jobId,omitempty"`
	Type         model.InterviewType `json:"type"`
	ScheduledAt  time.Time           `json:"scheduledAt"`
	DurationMin  int                 `json:"durationMinutes"`
	Interviewers []string            `json:"interviewers,omitempty"`
	Location     string              `json:"location,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Notify       bool                `json:"notify"`
}

// ScheduleInterview books an interview and optionally invites the candidate.
func (s *Service) ScheduleInterview(ctx context.Context, req InterviewRequest) (model.Interview, error) {
	if err := s.ready(); err != nil {
		return model.Interview{}, err
	}
	if _, err := model.ParseInterviewType(string(req.Type)); err != nil {
		return model.Interview{}, err
	}
	if req.ScheduledAt.IsZero() {
		return model.Interview{}, fmt.Errorf("%w: scheduledAt is required", model.ErrInvalidValue)
	}
	if req.DurationMin <= 0 {
		req.DurationMin = 60
	}
	c, err := s.store.Candidate(ctx, req.CandidateID)
	if err != nil {
		return model.Interview{}, err
	}
	if req.JobID == "" {
		req.JobID = c.JobID
	}

	iv := model.Interview{
		ID:           uuid.NewString(),
		CandidateID:  c.ID,
		JobID:        req.JobID,
		Type:         req.Type,
		Status:       model.InterviewScheduled,
		ScheduledAt:  req.ScheduledAt,
		DurationMin:  req.DurationMin,
		Interviewers: req.Interviewers,
		Location:     req.Location,
		Notes:        req.Notes,
	}
	if err := s.store.AddInterview(ctx, iv); err != nil {
		return model.Interview{}, err
	}
	when := req.ScheduledAt.Format("2006-01-02 15:04 MST")
	s.record(ctx, c.ID, model.ActivityInterviewScheduled, fmt.Sprintf("%s interview scheduled for %s", req.Type, when))
	if req.Notify && s.notify(ctx, model.NotifyInterviewInvite, c, when) {
		s.record(ctx, c.ID, model.ActivityEmailSent, "Interview invitation queued")
	}
	metrics.RecordInterviewScheduled()
	s.logger.Info(ctx, "interview scheduled",
		logger.String("interview", iv.ID),
		logger.String("candidate", c.ID),
		logger.Time("at", iv.ScheduledAt),
	)
	return iv, nil
}

// Interviews lists interviews by time, optionally for one candidate.
func (s *Service) Interviews(ctx context.Context, candidateID string) ([]model.Interview, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.Interviews(ctx, candidateID), nil
}

// UpdateInterviewStatus completes or cancels a scheduled interview.
func (s *Service) UpdateInterviewStatus(ctx context.Context, id string, status model.InterviewStatus) (model.Interview, error) {
	if err := s.ready(); err != nil {
		return model.Interview{}, err
	}
	if _, err := model.ParseInterviewStatus(string(status)); err != nil {
		return model.Interview{}, err
	}
	iv, err := s.store.UpdateInterview(ctx, id, func(iv *model.Interview) error {
		if iv.Status != model.InterviewScheduled || status == model.InterviewScheduled {
			return fmt.Errorf("%w: interview %s from %s to %s", model.ErrInvalidTransition, iv.ID, iv.Status, status)
		}
		iv.Status = status
		return nil
	})
	if err != nil {
		return model.Interview{}, err
	}
	s.logger.Info(ctx, "interview status changed",
		logger.String("interview", id),
		logger.String("status", string(status)),
	)
	return iv, nil
}
