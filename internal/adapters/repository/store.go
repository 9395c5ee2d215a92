// Package repository holds the console's in-memory records.
package repository

import (
	"context"

	"github.com/okian/talentdesk/internal/domain/model"
)

// Entry is one row of the AI score board.
type Entry struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidateId"`
	Name        string  `json:"name"`
	AIScore     float64 `json:"aiScore"`
}

// Store provides access to the console records. Reads return copies.
type Store interface {
	Candidates(ctx context.Context) []model.Candidate
	Candidate(ctx context.Context, id string) (model.Candidate, error)
	// AddCandidate stores a new candidate. Returns ErrConflict if the id exists.
	AddCandidate(ctx context.Context, c model.Candidate) error
	UpdateStage(ctx context.Context, id string, stage model.Stage) (model.Candidate, error)

	Jobs(ctx context.Context) []model.JobRequisition
	Job(ctx context.Context, id string) (model.JobRequisition, error)

	// Activity returns a candidate's timeline, newest first.
	Activity(ctx context.Context, candidateID string) []model.ActivityItem
	AddActivity(ctx context.Context, a model.ActivityItem)

	// Feedback returns feedback for a candidate, newest first. Unknown ids yield nothing.
	Feedback(ctx context.Context, candidateID string) []model.InterviewFeedback
	AddFeedback(ctx context.Context, f model.InterviewFeedback) error

	// Interviews returns interviews ordered by time; an empty id returns all.
	Interviews(ctx context.Context, candidateID string) []model.Interview
	AddInterview(ctx context.Context, iv model.Interview) error
	UpdateInterview(ctx context.Context, id string, fn func(*model.Interview) error) (model.Interview, error)

	// Offers returns offers newest first; an empty id returns all.
	Offers(ctx context.Context, candidateID string) []model.Offer
	Offer(ctx context.Context, id string) (model.Offer, error)
	AddOffer(ctx context.Context, o model.Offer) error
	UpdateOffer(ctx context.Context, id string, fn func(*model.Offer) error) (model.Offer, error)

	// TopN returns the n best candidates by AI score.
	TopN(ctx context.Context, n int) ([]Entry, error)
	// Rank returns a candidate's dense rank by AI score.
	Rank(ctx context.Context, id string) (Entry, error)

	Count(ctx context.Context) int
}
