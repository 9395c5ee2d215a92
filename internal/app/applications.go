package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/wizard"
	"github.com/okian/talentdesk/pkg/logger"
	"github.com/okian/talentdesk/pkg/metrics"
)

// Application is a wizard snapshot plus the candidate it produced, if any.
type Application struct {
	wizard.Snapshot
	CandidateID string `json:"candidateId,omitempty"`
}

func (s *Service) view(w *wizard.Wizard) Application {
	a := Application{Snapshot: w.Snapshot()}
	if id, ok := s.submitted.Load(w.ID()); ok {
		a.CandidateID = id.(string)
	}
	return a
}

func (s *Service) session(id string) (*wizard.Wizard, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.wizards.Get(id)
}

// StartApplication opens a wizard session for an existing job.
func (s *Service) StartApplication(ctx context.Context, jobID string) (Application, error) {
	if err := s.ready(); err != nil {
		return Application{}, err
	}
	if _, err := s.store.Job(ctx, jobID); err != nil {
		return Application{}, err
	}
	w := s.wizards.Start(jobID, s.now())
	metrics.RecordWizardTransition("start")
	metrics.UpdateWizardSessions(s.wizards.Len())
	s.logger.Debug(ctx, "application started",
		logger.String("session", w.ID()),
		logger.String("job", jobID),
	)
	return s.view(w), nil
}

// Application returns the current state of a session.
func (s *Service) Application(_ context.Context, id string) (Application, error) {
	w, err := s.session(id)
	if err != nil {
		return Application{}, err
	}
	return s.view(w), nil
}

// ApplicationNext moves forward. Leaving the review step submits.
func (s *Service) ApplicationNext(ctx context.Context, id string) (Application, error) {
	w, err := s.session(id)
	if err != nil {
		return Application{}, err
	}
	wasDone := w.Done()
	w.Next(s.now())
	metrics.RecordWizardTransition("next")
	if !wasDone && w.Done() {
		if err := s.finalize(ctx, w); err != nil {
			return Application{}, err
		}
	}
	return s.view(w), nil
}

// ApplicationBack moves backward.
func (s *Service) ApplicationBack(_ context.Context, id string) (Application, error) {
	w, err := s.session(id)
	if err != nil {
		return Application{}, err
	}
	w.Back()
	metrics.RecordWizardTransition("back")
	return s.view(w), nil
}

// editable returns the session when its form may still change.
func (s *Service) editable(id string) (*wizard.Wizard, error) {
	w, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if w.Done() {
		return nil, wizard.ErrAlreadySubmitted
	}
	return w, nil
}

// UpdateBasic replaces the contact details section.
func (s *Service) UpdateBasic(_ context.Context, id string, b wizard.Basic) (Application, error) {
	w, err := s.editable(id)
	if err != nil {
		return Application{}, err
	}
	w.UpdateBasic(b)
	return s.view(w), nil
}

// UpdateResume replaces the resume section.
func (s *Service) UpdateResume(_ context.Context, id string, r wizard.Resume) (Application, error) {
	w, err := s.editable(id)
	if err != nil {
		return Application{}, err
	}
	w.UpdateResume(r)
	return s.view(w), nil
}

// UpdateAdditional replaces the additional questions section.
func (s *Service) UpdateAdditional(_ context.Context, id string, a wizard.Additional) (Application, error) {
	w, err := s.editable(id)
	if err != nil {
		return Application{}, err
	}
	if a.WorkMode != "" && !a.WorkMode.IsValid() {
		return Application{}, fmt.Errorf("%w: work mode %q", model.ErrInvalidEnum, a.WorkMode)
	}
	w.UpdateAdditional(a)
	return s.view(w), nil
}

// UpdateReview replaces the review confirmation.
func (s *Service) UpdateReview(_ context.Context, id string, r wizard.Review) (Application, error) {
	w, err := s.editable(id)
	if err != nil {
		return Application{}, err
	}
	w.UpdateReview(r)
	return s.view(w), nil
}

// SubmitApplication submits from the review step. Incomplete forms are
// accepted; Missing in the result lists what was left out.
func (s *Service) SubmitApplication(ctx context.Context, id string) (Application, error) {
	w, err := s.session(id)
	if err != nil {
		return Application{}, err
	}
	if err := w.Submit(s.now()); err != nil {
		if errors.Is(err, wizard.ErrAlreadySubmitted) {
			metrics.RecordWizardDuplicate()
		}
		return Application{}, err
	}
	metrics.RecordWizardTransition("submit")
	if err := s.finalize(ctx, w); err != nil {
		return Application{}, err
	}
	return s.view(w), nil
}

// CloseApplication dismisses a session. Before success it closes only when
// confirm is true; after success it always closes.
func (s *Service) CloseApplication(ctx context.Context, id string, confirm bool) (bool, error) {
	w, err := s.session(id)
	if err != nil {
		return false, err
	}
	if !w.Close(func() bool { return confirm }) {
		return false, nil
	}
	s.wizards.Remove(id)
	s.submitted.Delete(id)
	metrics.RecordWizardTransition("close")
	metrics.UpdateWizardSessions(s.wizards.Len())
	s.logger.Debug(ctx, "application closed", logger.String("session", id))
	return true, nil
}

// finalize turns a submitted session into a candidate once per session.
func (s *Service) finalize(ctx context.Context, w *wizard.Wizard) error {
	key := w.ID()
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordWizardDuplicate()
		s.logger.Warn(ctx, "duplicate application submission", logger.String("session", key))
		return nil
	}

	f := w.Form()
	now := s.now()
	c := model.Candidate{
		ID:             uuid.NewString(),
		FirstName:      strings.TrimSpace(f.Basic.FirstName),
		LastName:       strings.TrimSpace(f.Basic.LastName),
		Email:          strings.TrimSpace(f.Basic.Email),
		Phone:          f.Basic.Phone,
		JobID:          f.JobID,
		Location:       f.Basic.Location,
		Nationality:    f.Additional.Nationality,
		Stage:          model.StageNew,
		Source:         model.SourcePortal,
		AppliedAt:      now,
		WorkMode:       f.Additional.WorkMode,
		ExpectedSalary: f.Additional.ExpectedSalary,
		NoticePeriod:   f.Additional.NoticePeriod,
		Skills:         model.Skills{Technical: f.Additional.Skills},
	}
	if job, err := s.store.Job(ctx, f.JobID); err == nil {
		c.JobTitle = job.Title
	}
	if f.Resume.File != nil {
		c.Documents = append(c.Documents, model.Document{
			Name:       f.Resume.File.Name,
			Type:       f.Resume.File.ContentType,
			UploadedAt: now,
		})
	}
	if f.Resume.LinkedIn != "" {
		c.Links = append(c.Links, model.Link{Label: "LinkedIn", URL: f.Resume.LinkedIn})
	}
	if f.Resume.Portfolio != "" {
		c.Links = append(c.Links, model.Link{Label: "Portfolio", URL: f.Resume.Portfolio})
	}

	if err := s.store.AddCandidate(ctx, c); err != nil {
		s.deduper.Unrecord(ctx, key)
		w.Reopen()
		s.logger.Warn(ctx, "application not recorded; session reopened",
			logger.String("session", key),
			logger.Error(err),
		)
		return err
	}
	s.submitted.Store(key, c.ID)
	s.record(ctx, c.ID, model.ActivityApplied, "Applied via careers portal")
	if c.Email != "" && s.notify(ctx, model.NotifyApplicationReceived, c, c.JobTitle) {
		s.record(ctx, c.ID, model.ActivityEmailSent, "Application acknowledgement queued")
	}
	metrics.RecordWizardSubmission()
	s.logger.Info(ctx, "application submitted",
		logger.String("session", key),
		logger.String("candidate", c.ID),
		logger.String("job", f.JobID),
	)
	return nil
}
