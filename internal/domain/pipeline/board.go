package pipeline

import (
	"fmt"
	"strings"

	"github.com/okian/talentdesk/internal/domain/model"
)

// StageChangeFunc is invoked with exactly the id and stage requested.
type StageChangeFunc func(candidateID string, stage model.Stage) error

// RejectFunc is invoked when a candidate is rejected.
type RejectFunc func(candidateID, reason string, notify bool) error

// Column is one stage lane of the board.
type Column struct {
	Stage      model.Stage       `json:"stage"`
	Candidates []model.Candidate `json:"candidates"`
}

// Board groups candidates by stage and forwards moves to its callbacks.
// It never changes candidates itself.
type Board struct {
	OnStageChange StageChangeFunc
	OnReject      RejectFunc
}

// Columns groups candidates into one column per stage in pipeline order.
func (b Board) Columns(candidates []model.Candidate) []Column {
	cols := make([]Column, len(model.Stages))
	idx := make(map[model.Stage]int, len(model.Stages))
	for i, s := range model.Stages {
		cols[i] = Column{Stage: s, Candidates: []model.Candidate{}}
		idx[s] = i
	}
	for _, c := range candidates {
		if i, ok := idx[c.Stage]; ok {
			cols[i].Candidates = append(cols[i].Candidates, c)
		}
	}
	return cols
}

// Move validates stage and calls OnStageChange.
func (b Board) Move(candidateID string, stage model.Stage) error {
	if !stage.IsValid() {
		return fmt.Errorf("%w: stage %q", model.ErrInvalidEnum, stage)
	}
	if candidateID == "" {
		return fmt.Errorf("%w: empty candidate id", model.ErrInvalidValue)
	}
	if b.OnStageChange == nil {
		return nil
	}
	return b.OnStageChange(candidateID, stage)
}

// Reject calls OnReject with a trimmed reason.
func (b Board) Reject(candidateID, reason string, notify bool) error {
	if candidateID == "" {
		return fmt.Errorf("%w: empty candidate id", model.ErrInvalidValue)
	}
	if b.OnReject == nil {
		return nil
	}
	return b.OnReject(candidateID, strings.TrimSpace(reason), notify)
}
