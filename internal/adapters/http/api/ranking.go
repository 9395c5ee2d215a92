package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/talentdesk/internal/adapters/repository"
)

// RankingDependencies exposes the AI score leaderboard.
type RankingDependencies interface {
	TopCandidates(ctx context.Context, n int) ([]repository.Entry, error)
	CandidateRank(ctx context.Context, id string) (repository.Entry, error)
}

// handleTopCandidates serves GET /candidates/top?limit=N. The service
// enforces the upper bound.
func (s *Server) handleTopCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.top_candidates"
	n := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		var err error
		if n, err = strconv.Atoi(v); err != nil || n < 1 {
			s.fail(w, r, op, NewKind(op, ErrBadRequest))
			return
		}
	}
	entries, err := s.deps.TopCandidates(r.Context(), n)
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleCandidateRank serves GET /candidates/{id}/rank.
func (s *Server) handleCandidateRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.candidate_rank"
	entry, err := s.deps.CandidateRank(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
