package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/okian/talentdesk/internal/domain/model"
)

// FileRef is an uploaded file kept only as metadata.
type FileRef struct {
	Name        string `json:"name" validate:"required"`
	Size        int64  `json:"size" validate:"gt=0"`
	ContentType string `json:"contentType"`
}

// Basic holds the contact details step.
type Basic struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Location  string `json:"location"`
}

// Resume holds the resume step.
type Resume struct {
	File        *FileRef `json:"file" validate:"required"`
	CoverLetter string   `json:"coverLetter"`
	LinkedIn    string   `json:"linkedIn" validate:"omitempty,url"`
	Portfolio   string   `json:"portfolio" validate:"omitempty,url"`
}

// Additional holds the optional questions step.
type Additional struct {
	Nationality    string         `json:"nationality"`
	WorkMode       model.WorkMode `json:"workMode"`
	ExpectedSalary string         `json:"expectedSalary"`
	NoticePeriod   string         `json:"noticePeriod"`
	Skills         []string       `json:"skills"`
	Referral       string         `json:"referral"`
}

// Review holds the final confirmation.
type Review struct {
	AgreeTerms bool `json:"agreeTerms" validate:"required"`
}

// Form is the in-memory state accumulated across steps.
type Form struct {
	JobID      string     `json:"jobId"`
	Basic      Basic      `json:"basic"`
	Resume     Resume     `json:"resume"`
	Additional Additional `json:"additional"`
	Review     Review     `json:"review"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Missing lists the fields of step that fail their tags. It never blocks navigation.
func (f Form) Missing(step Step) []string {
	var section any
	switch step {
	case StepBasic:
		section = f.Basic
	case StepResume:
		section = f.Resume
	case StepAdditional:
		return nil
	case StepReview:
		section = f.Review
	default:
		return nil
	}

	err := getValidator().Struct(section)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s.%s", step, fe.Field()))
	}
	return out
}

// Report returns the missing fields per step, omitting complete steps.
func (f Form) Report() map[Step][]string {
	report := make(map[Step][]string)
	for _, s := range Steps {
		if m := f.Missing(s); len(m) > 0 {
			report[s] = m
		}
	}
	return report
}
