package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/internal/domain/wizard"
)

// ApplicationDependencies drives the job application wizard.
type ApplicationDependencies interface {
	StartApplication(ctx context.Context, jobID string) (service.Application, error)
	Application(ctx context.Context, id string) (service.Application, error)
	ApplicationNext(ctx context.Context, id string) (service.Application, error)
	ApplicationBack(ctx context.Context, id string) (service.Application, error)
	UpdateBasic(ctx context.Context, id string, b wizard.Basic) (service.Application, error)
	UpdateResume(ctx context.Context, id string, r wizard.Resume) (service.Application, error)
	UpdateAdditional(ctx context.Context, id string, a wizard.Additional) (service.Application, error)
	UpdateReview(ctx context.Context, id string, r wizard.Review) (service.Application, error)
	SubmitApplication(ctx context.Context, id string) (service.Application, error)
	CloseApplication(ctx context.Context, id string, confirm bool) (bool, error)
}

type startApplicationRequest struct {
	JobID string `json:"jobId"`
}

type closeResponse struct {
	Closed bool `json:"closed"`
}

func (s *Server) handleStartApplication(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_application"
	var req startApplicationRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	if strings.TrimSpace(req.JobID) == "" {
		s.fail(w, r, op, NewKind(op, ErrBadRequest))
		return
	}
	a, err := s.deps.StartApplication(r.Context(), req.JobID)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_application"
	a, err := s.deps.Application(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleUpdateApplication serves PUT /applications/{id}/{section}, replacing
// one form section.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_application"
	id := r.PathValue("id")
	step, err := wizard.ParseStep(r.PathValue("section"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}

	var a service.Application
	switch step {
	case wizard.StepBasic:
		var b wizard.Basic
		if err = decode(r, op, &b); err == nil {
			a, err = s.deps.UpdateBasic(r.Context(), id, b)
		}
	case wizard.StepResume:
		var res wizard.Resume
		if err = decode(r, op, &res); err == nil {
			a, err = s.deps.UpdateResume(r.Context(), id, res)
		}
	case wizard.StepAdditional:
		var add wizard.Additional
		if err = decode(r, op, &add); err == nil {
			a, err = s.deps.UpdateAdditional(r.Context(), id, add)
		}
	case wizard.StepReview:
		var rev wizard.Review
		if err = decode(r, op, &rev); err == nil {
			a, err = s.deps.UpdateReview(r.Context(), id, rev)
		}
	}
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleApplicationAction serves POST /applications/{id}/{next|back|submit|close}.
// close takes ?confirm=true to dismiss an unfinished application.
func (s *Server) handleApplicationAction(w http.ResponseWriter, r *http.Request) {
	const op = "api.application_action"
	id := r.PathValue("id")
	var (
		a   service.Application
		err error
	)
	switch r.PathValue("action") {
	case "next":
		a, err = s.deps.ApplicationNext(r.Context(), id)
	case "back":
		a, err = s.deps.ApplicationBack(r.Context(), id)
	case "submit":
		a, err = s.deps.SubmitApplication(r.Context(), id)
	case "close":
		confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
		closed, cerr := s.deps.CloseApplication(r.Context(), id, confirm)
		if cerr != nil {
			s.fail(w, r, op, cerr)
			return
		}
		writeJSON(w, http.StatusOK, closeResponse{Closed: closed})
		return
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
