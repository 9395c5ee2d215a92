// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/pkg/logger"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CandidateDependencies
	RankingDependencies
	HiringDependencies
	PortalDependencies
	ApplicationDependencies
	StatsProvider
}

// Server wires HTTP routes for the console API.
type Server struct {
	deps     Dependencies
	fallback locale.Locale
	logger   logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(l locale.Locale) Option {
	return func(s *Server) {
		if l.Code != "" {
			s.fallback = l
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server over deps.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{deps: deps, fallback: locale.English}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}

// route registers h under pattern with metrics and locale negotiation.
func (s *Server) route(mux *http.ServeMux, pattern, endpoint string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, MetricsMiddleware(LocaleMiddleware(h, s.fallback), endpoint))
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	s.route(mux, "GET /healthz", "healthz", s.handleHealth)
	s.route(mux, "GET /stats", "stats", s.handleStats)
	s.route(mux, "GET /i18n", "i18n", s.handleLabels)

	s.route(mux, "GET /candidates", "candidates", s.handleListCandidates)
	s.route(mux, "GET /candidates/export.xlsx", "candidates_export", s.handleExportCandidates)
	s.route(mux, "GET /candidates/top", "candidates_top", s.handleTopCandidates)
	s.route(mux, "GET /candidates/{id}", "candidate", s.handleGetCandidate)
	s.route(mux, "GET /candidates/{id}/similar", "candidate_similar", s.handleSimilarCandidates)
	s.route(mux, "GET /candidates/{id}/rank", "candidate_rank", s.handleCandidateRank)
	s.route(mux, "POST /candidates/{id}/stage", "candidate_stage", s.handleChangeStage)
	s.route(mux, "POST /candidates/{id}/reject", "candidate_reject", s.handleReject)
	s.route(mux, "GET /candidates/{id}/activity", "candidate_activity", s.handleActivity)
	s.route(mux, "GET /candidates/{id}/feedback", "candidate_feedback", s.handleListFeedback)
	s.route(mux, "POST /candidates/{id}/feedback", "candidate_feedback", s.handleAddFeedback)
	s.route(mux, "GET /pipeline", "pipeline", s.handlePipeline)

	s.route(mux, "GET /jobs", "jobs", s.handleJobs)
	s.route(mux, "GET /interviews", "interviews", s.handleListInterviews)
	s.route(mux, "POST /interviews", "interviews", s.handleScheduleInterview)
	s.route(mux, "POST /interviews/{id}/status", "interview_status", s.handleInterviewStatus)
	s.route(mux, "GET /offers", "offers", s.handleListOffers)
	s.route(mux, "POST /offers", "offers", s.handleCreateOffer)
	s.route(mux, "POST /offers/{id}/status", "offer_status", s.handleOfferStatus)
	s.route(mux, "GET /notifications", "notifications", s.handleNotifications)

	s.route(mux, "GET /portal/settings", "portal_settings", s.handleGetSettings)
	s.route(mux, "PATCH /portal/settings", "portal_settings", s.handlePatchSettings)
	s.route(mux, "POST /portal/settings/save", "portal_settings_save", s.handleSaveSettings)

	s.route(mux, "POST /applications", "applications", s.handleStartApplication)
	s.route(mux, "GET /applications/{id}", "application", s.handleGetApplication)
	s.route(mux, "PUT /applications/{id}/{section}", "application_section", s.handleUpdateApplication)
	s.route(mux, "POST /applications/{id}/{action}", "application_action", s.handleApplicationAction)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail classifies err and writes it. Server-side failures are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			logger.String("op", op),
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeError(w, status, code, Wrap(op, err))
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("decode body: %w", err))
	}
	return nil
}
