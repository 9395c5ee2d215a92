package model

import "time"

// ActivityItem is one entry of a candidate's timeline.
type ActivityItem struct {
	ID          string       `json:"id" yaml:"id"`
	CandidateID string       `json:"candidateId" yaml:"candidateId"`
	Kind        ActivityKind `json:"kind" yaml:"kind"`
	Description string       `json:"description" yaml:"description"`
	Actor       string       `json:"actor,omitempty" yaml:"actor"`
	At          time.Time    `json:"at" yaml:"at"`
}
