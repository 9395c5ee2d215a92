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

// OfferRequest describes a new offer.
type OfferRequest struct {
	CandidateID string    `json:"candidateId"`
	JobID       string    `json:"jobId,omitempty"`
	Salary      float64   `json:"salary"`
	Currency    string    `json:"currency"`
	StartDate   time.Time `json:"startDate"`
	Notes       string    `json:"notes,omitempty"`
}

// CreateOffer drafts an offer for a known candidate.
func (s *Service) CreateOffer(ctx context.Context, req OfferRequest) (model.Offer, error) {
	if err := s.ready(); err != nil {
		return model.Offer{}, err
	}
	if req.Salary <= 0 {
		return model.Offer{}, fmt.Errorf("%w: salary must be positive", model.ErrInvalidValue)
	}
	c, err := s.store.Candidate(ctx, req.CandidateID)
	if err != nil {
		return model.Offer{}, err
	}
	if req.JobID == "" {
		req.JobID = c.JobID
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}
	now := s.now()
	o := model.Offer{
		ID:          uuid.NewString(),
		CandidateID: c.ID,
		JobID:       req.JobID,
		Salary:      req.Salary,
		Currency:    currency,
		StartDate:   req.StartDate,
		Status:      model.OfferDraft,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.AddOffer(ctx, o); err != nil {
		return model.Offer{}, err
	}
	s.record(ctx, c.ID, model.ActivityOfferCreated, fmt.Sprintf("Offer drafted: %.0f %s", o.Salary, o.Currency))
	metrics.RecordOfferTransition(string(model.OfferDraft))
	s.logger.Info(ctx, "offer created",
		logger.String("offer", o.ID),
		logger.String("candidate", c.ID),
	)
	return o, nil
}

// UpdateOfferStatus moves an offer along its lifecycle. A sent offer emails
// the candidate and moves them to offered; an accepted one moves them to hired.
func (s *Service) UpdateOfferStatus(ctx context.Context, id string, status model.OfferStatus) (model.Offer, error) {
	if err := s.ready(); err != nil {
		return model.Offer{}, err
	}
	if _, err := model.ParseOfferStatus(string(status)); err != nil {
		return model.Offer{}, err
	}
	o, err := s.store.UpdateOffer(ctx, id, func(o *model.Offer) error {
		return o.Transition(status, s.now())
	})
	if err != nil {
		return model.Offer{}, err
	}
	s.record(ctx, o.CandidateID, model.ActivityOfferUpdated, fmt.Sprintf("Offer %s", status))
	metrics.RecordOfferTransition(string(status))

	switch status {
	case model.OfferSent:
		if err := s.applyStageChange(ctx, o.CandidateID, model.StageOffered); err != nil {
			return o, err
		}
		c, err := s.store.Candidate(ctx, o.CandidateID)
		if err != nil {
			return o, err
		}
		detail := fmt.Sprintf("%.0f %s, starting %s", o.Salary, o.Currency, o.StartDate.Format("2006-01-02"))
		if s.notify(ctx, model.NotifyOffer, c, detail) {
			s.record(ctx, c.ID, model.ActivityEmailSent, "Offer letter queued")
		}
	case model.OfferAccepted:
		if err := s.applyStageChange(ctx, o.CandidateID, model.StageHired); err != nil {
			return o, err
		}
	}
	s.logger.Info(ctx, "offer status changed",
		logger.String("offer", id),
		logger.String("candidate", o.CandidateID),
		logger.String("status", string(status)),
	)
	return o, nil
}

// Offers lists offers newest first, optionally for one candidate.
func (s *Service) Offers(ctx context.Context, candidateID string) ([]model.Offer, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.Offers(ctx, candidateID), nil
}
