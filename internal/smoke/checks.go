package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Error constants
var (
	ErrUnexpected = errors.New("unexpected response")
)

type candidateView struct {
	ID      string  `json:"id"`
	Stage   string  `json:"stage"`
	AIScore float64 `json:"aiScore"`
}

type matchView struct {
	Candidate candidateView `json:"candidate"`
	Score     float64       `json:"similarityScore"`
}

type entryView struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidateId"`
	AIScore     float64 `json:"aiScore"`
}

type applicationView struct {
	ID          string `json:"id"`
	Step        string `json:"step"`
	CandidateID string `json:"candidateId"`
}

func checkHealth(ctx context.Context, c *client) error {
	return c.expect(ctx, http.StatusOK, http.MethodGet, "/healthz", nil, nil)
}

func checkList(ctx context.Context, c *client) error {
	var out struct {
		Candidates []candidateView `json:"candidates"`
		Total      int             `json:"total"`
	}
	if err := c.expect(ctx, http.StatusOK, http.MethodGet, "/candidates?sort=-ai_score", nil, &out); err != nil {
		return err
	}
	if out.Total != len(out.Candidates) || out.Total == 0 {
		return fmt.Errorf("%w: total %d with %d candidates", ErrUnexpected, out.Total, len(out.Candidates))
	}
	if !sort.SliceIsSorted(out.Candidates, func(i, j int) bool {
		return out.Candidates[i].AIScore > out.Candidates[j].AIScore
	}) {
		return fmt.Errorf("%w: candidates not sorted by ai score", ErrUnexpected)
	}
	return nil
}

// checkSimilar verifies the ranking excludes the subject, stays in [0,100]
// and is ordered by score.
func checkSimilar(ctx context.Context, c *client, id string) error {
	var ms []matchView
	if err := c.expect(ctx, http.StatusOK, http.MethodGet, "/candidates/"+id+"/similar", nil, &ms); err != nil {
		return err
	}
	for i, m := range ms {
		if m.Candidate.ID == id {
			return fmt.Errorf("%w: subject %s ranked against itself", ErrUnexpected, id)
		}
		if m.Score < 0 || m.Score > 100 {
			return fmt.Errorf("%w: score %.2f out of range", ErrUnexpected, m.Score)
		}
		if i > 0 && m.Score > ms[i-1].Score {
			return fmt.Errorf("%w: scores not descending at %d", ErrUnexpected, i)
		}
	}
	return nil
}

func checkTop(ctx context.Context, c *client) error {
	var top []entryView
	if err := c.expect(ctx, http.StatusOK, http.MethodGet, "/candidates/top?limit=5", nil, &top); err != nil {
		return err
	}
	for i, e := range top {
		if e.Rank != i+1 {
			return fmt.Errorf("%w: rank %d at position %d", ErrUnexpected, e.Rank, i)
		}
	}
	return c.expect(ctx, http.StatusBadRequest, http.MethodGet, "/candidates/top?limit=0", nil, nil)
}

// checkStage moves the candidate forward and back, leaving it as found.
func checkStage(ctx context.Context, c *client, id string) error {
	var before candidateView
	if err := c.expect(ctx, http.StatusOK, http.MethodGet, "/candidates/"+id, nil, &before); err != nil {
		return err
	}
	var moved candidateView
	if err := c.expect(ctx, http.StatusOK, http.MethodPost, "/candidates/"+id+"/stage",
		map[string]string{"stage": "shortlisted"}, &moved); err != nil {
		return err
	}
	if moved.Stage != "shortlisted" {
		return fmt.Errorf("%w: stage %q after move", ErrUnexpected, moved.Stage)
	}
	if err := c.expect(ctx, http.StatusBadRequest, http.MethodPost, "/candidates/"+id+"/stage",
		map[string]string{"stage": "limbo"}, nil); err != nil {
		return err
	}
	return c.expect(ctx, http.StatusOK, http.MethodPost, "/candidates/"+id+"/stage",
		map[string]string{"stage": before.Stage}, nil)
}

// checkWizard walks an application from start to success and confirms
// a repeated submit is refused.
func checkWizard(ctx context.Context, c *client, jobID string) error {
	var app applicationView
	if err := c.expect(ctx, http.StatusCreated, http.MethodPost, "/applications",
		map[string]string{"jobId": jobID}, &app); err != nil {
		return err
	}
	base := "/applications/" + app.ID
	sections := []struct {
		name string
		body any
	}{
		{"basic", map[string]string{
			"firstName": "Smoke", "lastName": c.run[:8], "email": "smoke+" + c.run[:8] + "@example.com", "phone": "+10000000000",
		}},
		{"resume", map[string]any{"file": map[string]any{"name": "cv.pdf", "size": 1024, "contentType": "application/pdf"}}},
		{"additional", map[string]any{"workMode": "remote", "skills": []string{"go"}}},
		{"review", map[string]bool{"agreeTerms": true}},
	}
	for i, s := range sections {
		if err := c.expect(ctx, http.StatusOK, http.MethodPut, base+"/"+s.name, s.body, nil); err != nil {
			return err
		}
		if i < len(sections)-1 {
			if err := c.expect(ctx, http.StatusOK, http.MethodPost, base+"/next", nil, nil); err != nil {
				return err
			}
		}
	}
	if err := c.expect(ctx, http.StatusOK, http.MethodPost, base+"/submit", nil, &app); err != nil {
		return err
	}
	if app.Step != "success" || app.CandidateID == "" {
		return fmt.Errorf("%w: step %q candidate %q after submit", ErrUnexpected, app.Step, app.CandidateID)
	}
	if err := c.expect(ctx, http.StatusConflict, http.MethodPost, base+"/submit", nil, nil); err != nil {
		return err
	}
	return c.expect(ctx, http.StatusOK, http.MethodPost, base+"/close", nil, nil)
}
