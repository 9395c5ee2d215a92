package api

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/talentdesk/internal/adapters/export"
	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/pipeline"
	"github.com/okian/talentdesk/internal/domain/similarity"
)

// CandidateDependencies covers candidate reads and pipeline moves.
type CandidateDependencies interface {
	ListCandidates(ctx context.Context, filter pipeline.Filter, sort pipeline.Sort) ([]model.Candidate, error)
	Candidate(ctx context.Context, id string) (model.Candidate, error)
	SimilarCandidates(ctx context.Context, id string) ([]similarity.Match, error)
	ChangeStage(ctx context.Context, id string, stage model.Stage) (model.Candidate, error)
	RejectCandidate(ctx context.Context, id, reason string, notify bool) (model.Candidate, error)
	Activity(ctx context.Context, candidateID string) ([]model.ActivityItem, error)
	Feedback(ctx context.Context, candidateID string) ([]model.InterviewFeedback, error)
	AddFeedback(ctx context.Context, f model.InterviewFeedback) (model.InterviewFeedback, error)
	Pipeline(ctx context.Context, filter pipeline.Filter, sort pipeline.Sort) ([]pipeline.Column, error)
	PipelineCounts(ctx context.Context, filter pipeline.Filter) (map[model.Stage]int, error)
}

// splitList reads a repeated or comma separated query parameter.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseQuery reads filter and sort parameters shared by list, pipeline and export.
func parseQuery(r *http.Request, op string) (pipeline.Filter, pipeline.Sort, error) {
	q := r.URL.Query()
	var f pipeline.Filter
	for _, v := range splitList(q["stage"]) {
		st, err := model.ParseStage(v)
		if err != nil {
			return f, pipeline.Sort{}, WrapKind(op, ErrBadRequest, err)
		}
		f.Stages = append(f.Stages, st)
	}
	for _, v := range splitList(q["source"]) {
		src, err := model.ParseSource(v)
		if err != nil {
			return f, pipeline.Sort{}, WrapKind(op, ErrBadRequest, err)
		}
		f.Sources = append(f.Sources, src)
	}
	f.Query = strings.TrimSpace(q.Get("q"))
	f.JobID = strings.TrimSpace(q.Get("jobId"))
	if v := q.Get("minScore"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 || n > 100 {
			return f, pipeline.Sort{}, NewKind(op, ErrBadRequest)
		}
		f.MinAIScore = n
	}
	sort, err := pipeline.ParseSort(q.Get("sort"))
	if err != nil {
		return f, pipeline.Sort{}, WrapKind(op, ErrBadRequest, err)
	}
	return f, sort, nil
}

// handleListCandidates serves GET /candidates?stage=&source=&q=&minScore=&jobId=&sort=.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_candidates"
	f, sort, err := parseQuery(r, op)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	cs, err := s.deps.ListCandidates(r.Context(), f, sort)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": cs, "total": len(cs)})
}

func (s *Server) handleExportCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_candidates"
	f, sort, err := parseQuery(r, op)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	cs, err := s.deps.ListCandidates(r.Context(), f, sort)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	var buf bytes.Buffer
	if err := export.CandidatesXLSX(&buf, cs, locale.FromContext(r.Context())); err != nil {
		s.fail(w, r, op, WrapKind(op, ErrExport, err))
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidate"
	c, err := s.deps.Candidate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSimilarCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.similar_candidates"
	ms, err := s.deps.SimilarCandidates(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ms)
}

type stageRequest struct {
	Stage model.Stage `json:"stage"`
}

func (s *Server) handleChangeStage(w http.ResponseWriter, r *http.Request) {
	const op = "api.change_stage"
	var req stageRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	if req.Stage == "" {
		s.fail(w, r, op, NewKind(op, ErrBadRequest))
		return
	}
	c, err := s.deps.ChangeStage(r.Context(), r.PathValue("id"), req.Stage)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type rejectRequest struct {
	Reason string `json:"reason"`
	Notify bool   `json:"notify"`
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	const op = "api.reject_candidate"
	var req rejectRequest
	if err := decode(r, op, &req); err != nil {
		s.fail(w, r, op, err)
		return
	}
	c, err := s.deps.RejectCandidate(r.Context(), r.PathValue("id"), req.Reason, req.Notify)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	const op = "api.activity"
	items, err := s.deps.Activity(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_feedback"
	fs, err := s.deps.Feedback(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

func (s *Server) handleAddFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_feedback"
	var f model.InterviewFeedback
	if err := decode(r, op, &f); err != nil {
		s.fail(w, r, op, err)
		return
	}
	f.CandidateID = r.PathValue("id")
	out, err := s.deps.AddFeedback(r.Context(), f)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

type pipelineResponse struct {
	Columns []pipeline.Column   `json:"columns"`
	Counts  map[model.Stage]int `json:"counts"`
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.pipeline"
	f, sort, err := parseQuery(r, op)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	cols, err := s.deps.Pipeline(r.Context(), f, sort)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	counts, err := s.deps.PipelineCounts(r.Context(), f)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pipelineResponse{Columns: cols, Counts: counts})
}
