package model

import (
	"fmt"
	"time"
)

// Interview is a scheduled conversation with a candidate.
type Interview struct {
	ID           string          `json:"id" yaml:"id"`
	CandidateID  string          `json:"candidateId" yaml:"candidateId"`
	JobID        string          `json:"jobId,omitempty" yaml:"jobId"`
	Type         InterviewType   `json:"type" yaml:"type"`
	Status       InterviewStatus `json:"status" yaml:"status"`
	ScheduledAt  time.Time       `json:"scheduledAt" yaml:"scheduledAt"`
	DurationMin  int             `json:"durationMinutes" yaml:"durationMinutes"`
	Interviewers []string        `json:"interviewers,omitempty" yaml:"interviewers"`
	Location     string          `json:"location,omitempty" yaml:"location"`
	Notes        string          `json:"notes,omitempty" yaml:"notes"`
}

// InterviewFeedback is an interviewer's written evaluation.
// CandidateID is not checked against known candidates.
type InterviewFeedback struct {
	ID             string         `json:"id" yaml:"id"`
	CandidateID    string         `json:"candidateId" yaml:"candidateId"`
	Interviewer    string         `json:"interviewer" yaml:"interviewer"`
	Date           time.Time      `json:"date" yaml:"date"`
	Rating         int            `json:"rating" yaml:"rating"`
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
	Strengths      []string       `json:"strengths,omitempty" yaml:"strengths"`
	Concerns       []string       `json:"concerns,omitempty" yaml:"concerns"`
	Notes          string         `json:"notes,omitempty" yaml:"notes"`
}

// Validate checks the rating range and the recommendation.
func (f InterviewFeedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("%w: rating %d outside [1,5]", ErrInvalidValue, f.Rating)
	}
	if _, err := ParseRecommendation(string(f.Recommendation)); err != nil {
		return err
	}
	return nil
}
