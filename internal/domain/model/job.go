package model

import "time"

// JobRequisition is an open or historical position shown in the console.
type JobRequisition struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Department     string    `json:"department" yaml:"department"`
	Location       string    `json:"location" yaml:"location"`
	Type           JobType   `json:"type" yaml:"type"`
	Status         JobStatus `json:"status" yaml:"status"`
	PostedAt       time.Time `json:"postedAt" yaml:"postedAt"`
	CandidateCount int       `json:"candidateCount" yaml:"candidateCount"`
	Description    string    `json:"description,omitempty" yaml:"description"`
}
