package model

import (
	"fmt"
	"slices"
	"time"
)

// OfferStatus is the lifecycle state of an offer.
type OfferStatus string

const (
	OfferDraft           OfferStatus = "draft"
	OfferPendingApproval OfferStatus = "pending_approval"
	OfferApproved        OfferStatus = "approved"
	OfferSent            OfferStatus = "sent"
	OfferAccepted        OfferStatus = "accepted"
	OfferDeclined        OfferStatus = "declined"
	OfferWithdrawn       OfferStatus = "withdrawn"
)

var OfferStatuses = []OfferStatus{
	OfferDraft, OfferPendingApproval, OfferApproved, OfferSent, OfferAccepted, OfferDeclined, OfferWithdrawn,
}

var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferDraft:           {OfferPendingApproval, OfferWithdrawn},
	OfferPendingApproval: {OfferApproved, OfferDraft, OfferWithdrawn},
	OfferApproved:        {OfferSent, OfferWithdrawn},
	OfferSent:            {OfferAccepted, OfferDeclined, OfferWithdrawn},
}

func ParseOfferStatus(s string) (OfferStatus, error) {
	return parseEnum("offer status", s, OfferStatuses)
}

func (o *OfferStatus) UnmarshalText(b []byte) (err error) {
	*o, err = ParseOfferStatus(string(b))
	return err
}

// Terminal reports whether no further transition is allowed.
func (o OfferStatus) Terminal() bool {
	return len(offerTransitions[o]) == 0
}

// CanTransition reports whether an offer may move from o to next.
func (o OfferStatus) CanTransition(next OfferStatus) bool {
	return slices.Contains(offerTransitions[o], next)
}

// Offer is an employment offer extended to a candidate.
type Offer struct {
	ID          string      `json:"id" yaml:"id"`
	CandidateID string      `json:"candidateId" yaml:"candidateId"`
	JobID       string      `json:"jobId" yaml:"jobId"`
	Salary      float64     `json:"salary" yaml:"salary"`
	Currency    string      `json:"currency" yaml:"currency"`
	StartDate   time.Time   `json:"startDate" yaml:"startDate"`
	Status      OfferStatus `json:"status" yaml:"status"`
	Notes       string      `json:"notes,omitempty" yaml:"notes"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// Transition moves the offer to next, stamping UpdatedAt.
func (o *Offer) Transition(next OfferStatus, now time.Time) error {
	if !o.Status.CanTransition(next) {
		return fmt.Errorf("%w: offer %s from %s to %s", ErrInvalidTransition, o.ID, o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = now
	return nil
}
