// Package pipeline filters, sorts and groups candidates for the pipeline view.
package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/talentdesk/internal/domain/model"
)

// Filter selects candidates. Zero fields match everything.
type Filter struct {
	Stages     []model.Stage
	Sources    []model.Source
	Query      string
	MinAIScore float64
	JobID      string
}

// Match reports whether c passes the filter.
func (f Filter) Match(c model.Candidate) bool {
	if len(f.Stages) > 0 && !slices.Contains(f.Stages, c.Stage) {
		return false
	}
	if len(f.Sources) > 0 && !slices.Contains(f.Sources, c.Source) {
		return false
	}
	if c.AIScore < f.MinAIScore {
		return false
	}
	if f.JobID != "" && c.JobID != f.JobID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(c.FullName()), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.JobTitle), q)
	}
	return true
}

// Apply returns the candidates that pass f, preserving order.
func (f Filter) Apply(candidates []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// SortField is a sortable candidate attribute.
type SortField string

const (
	SortByName      SortField = "name"
	SortByAIScore   SortField = "ai_score"
	SortByAppliedAt SortField = "applied_at"
)

// Sort orders candidates in place.
type Sort struct {
	Field SortField
	Desc  bool
}

// ParseSort reads "field" or "-field". Empty means newest applications first.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sort{Field: SortByAppliedAt, Desc: true}, nil
	}
	desc := strings.HasPrefix(s, "-")
	f := SortField(strings.TrimPrefix(s, "-"))
	switch f {
	case SortByName, SortByAIScore, SortByAppliedAt:
		return Sort{Field: f, Desc: desc}, nil
	}
	return Sort{}, fmt.Errorf("%w: sort field %q", model.ErrInvalidValue, f)
}

// Apply stable-sorts candidates.
func (s Sort) Apply(candidates []model.Candidate) {
	slices.SortStableFunc(candidates, func(a, b model.Candidate) int {
		var c int
		switch s.Field {
		case SortByName:
			c = cmp.Compare(strings.ToLower(a.FullName()), strings.ToLower(b.FullName()))
		case SortByAIScore:
			c = cmp.Compare(a.AIScore, b.AIScore)
		default:
			c = a.AppliedAt.Compare(b.AppliedAt)
		}
		if s.Desc {
			return -c
		}
		return c
	})
}

// Counts returns the number of candidates per stage, with every stage present.
func Counts(candidates []model.Candidate) map[model.Stage]int {
	out := make(map[model.Stage]int, len(model.Stages))
	for _, s := range model.Stages {
		out[s] = 0
	}
	for _, c := range candidates {
		out[c.Stage]++
	}
	return out
}
