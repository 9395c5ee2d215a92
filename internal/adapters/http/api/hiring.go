package api

import (
	"context"
	"net/http"

	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/internal/domain/model"
)

// HiringDependencies covers jobs, interviews, offers and the outbox.
type HiringDependencies interface {
	Jobs(ctx context.Context, status model.JobStatus, department string) ([]model.JobRequisition, error)
	ScheduleInterview(ctx context.Context, req service.InterviewRequest) (model.Interview, error)
	Interviews(ctx context.Context, candidateID string) ([]model.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id string, status model.InterviewStatus) (model.Interview, error)
	CreateOffer(ctx context.Context, req service.OfferRequest) (model.Offer, error)
	UpdateOfferStatus(ctx context.Context, id string, status model.OfferStatus) (model.Offer, error)
	Offers(ctx context.Context, candidateID string) ([]model.Offer, error)
	Notifications(ctx context.Context, candidateID string) ([]model.Notification, error)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	const op = "api.jobs"
	var status model.JobStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st, err := model.ParseJobStatus(v)
		if err != nil {
			s.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
			return
		}
		status = st
	}
	jobs, err := s.deps.Jobs(r.Context(), status, r.URL.Query().Get("department"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_interviews"
	ivs, err := s.deps.Interviews(r.Context(), r.URL.Query().Get("candidateId"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ivs)
}

func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	const op = "api.schedule_interview"
	var req service.InterviewRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	iv, err := s.deps.ScheduleInterview(r.Context(), req)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, iv)
}

type interviewStatusRequest struct {
	Status model.InterviewStatus `json:"status"`
}

func (s *Server) handleInterviewStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.interview_status"
	var req interviewStatusRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	iv, err := s.deps.UpdateInterviewStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, iv)
}

func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_offers"
	offers, err := s.deps.Offers(r.Context(), r.URL.Query().Get("candidateId"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_offer"
	var req service.OfferRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	o, err := s.deps.CreateOffer(r.Context(), req)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

type offerStatusRequest struct {
	Status model.OfferStatus `json:"status"`
}

func (s *Server) handleOfferStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.offer_status"
	var req offerStatusRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	o, err := s.deps.UpdateOfferStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "api.notifications"
	ns, err := s.deps.Notifications(r.Context(), r.URL.Query().Get("candidateId"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}
