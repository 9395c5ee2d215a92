// Package wizard implements the job application flow:
// basic, resume, additional, review, then a terminal success step.
//
// Navigation is never gated on completeness. Form.Missing reports gaps so a
// caller can surface them.
package wizard

import (
	"fmt"
	"sync"
	"time"
)

// Step names one page of the wizard.
type Step string

const (
	StepBasic      Step = "basic"
	StepResume     Step = "resume"
	StepAdditional Step = "additional"
	StepReview     Step = "review"
	StepSuccess    Step = "success"
)

// Steps are the navigable pages. Index len(Steps) is the success step.
var Steps = []Step{StepBasic, StepResume, StepAdditional, StepReview}

// ParseStep accepts one of Steps.
func ParseStep(s string) (Step, error) {
	for _, st := range Steps {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Wizard is one applicant's progress. It is safe for concurrent use.
type Wizard struct {
	mu          sync.Mutex
	id          string
	current     int
	form        Form
	createdAt   time.Time
	submittedAt time.Time
}

// New starts a wizard on the basic step.
func New(id, jobID string, now time.Time) *Wizard {
	return &Wizard{id: id, form: Form{JobID: jobID}, createdAt: now}
}

func (w *Wizard) ID() string { return w.id }

// Current returns the step index in [0, len(Steps)].
func (w *Wizard) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Step returns the current step name.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step()
}

func (w *Wizard) step() Step {
	if w.current >= len(Steps) {
		return StepSuccess
	}
	return Steps[w.current]
}

// Done reports whether the terminal step was reached.
func (w *Wizard) Done() bool { return w.Current() == len(Steps) }

// Next moves forward while the terminal step has not been reached.
// Moving forward off review reaches the terminal step, like Submit.
func (w *Wizard) Next(now time.Time) Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current < len(Steps) {
		w.current++
		if w.current == len(Steps) {
			w.submittedAt = now
		}
	}
	return w.step()
}

// Back moves backward while above the first step. It does nothing once the
// application is submitted.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current > 0 && w.current < len(Steps) {
		w.current--
	}
	return w.step()
}

// Submit jumps from review to the terminal step.
func (w *Wizard) Submit(now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.current == len(Steps):
		return ErrAlreadySubmitted
	case Steps[w.current] != StepReview:
		return fmt.Errorf("%w: on %s", ErrNotOnReview, Steps[w.current])
	}
	w.current = len(Steps)
	w.submittedAt = now
	return nil
}

// Reopen returns a submitted wizard to review. It is used when the
// submission could not be recorded and may be retried.
func (w *Wizard) Reopen() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == len(Steps) {
		w.current = len(Steps) - 1
		w.submittedAt = time.Time{}
	}
}

// Close reports whether the wizard may be dismissed. Before the terminal
// step confirm decides; after it, closing is unconditional.
func (w *Wizard) Close(confirm func() bool) bool {
	if w.Done() {
		return true
	}
	return confirm != nil && confirm()
}

// Form returns a copy of the accumulated form.
func (w *Wizard) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	f := w.form
	if f.Resume.File != nil {
		file := *f.Resume.File
		f.Resume.File = &file
	}
	f.Additional.Skills = append([]string(nil), f.Additional.Skills...)
	return f
}

func (w *Wizard) UpdateBasic(b Basic) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Basic = b
}

func (w *Wizard) UpdateResume(r Resume) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Resume = r
}

func (w *Wizard) UpdateAdditional(a Additional) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Additional = a
}

func (w *Wizard) UpdateReview(r Review) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.Review = r
}

// Snapshot is the serializable view of a wizard.
type Snapshot struct {
	ID          string            `json:"id"`
	Step        Step              `json:"step"`
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	Form        Form              `json:"form"`
	Missing     map[Step][]string `json:"missing,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
}

// Snapshot captures the wizard state.
func (w *Wizard) Snapshot() Snapshot {
	f := w.Form()
	w.mu.Lock()
	defer w.mu.Unlock()
	s := Snapshot{
		ID:        w.id,
		Step:      w.step(),
		Index:     w.current,
		Total:     len(Steps),
		Form:      f,
		Missing:   f.Report(),
		CreatedAt: w.createdAt,
	}
	if !w.submittedAt.IsZero() {
		at := w.submittedAt
		s.SubmittedAt = &at
	}
	return s
}
