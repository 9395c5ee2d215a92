package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/talentdesk/internal/adapters/repository"
	service "github.com/okian/talentdesk/internal/app"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/portal"
	"github.com/okian/talentdesk/internal/domain/wizard"
)

// statusClientClosedRequest reports a request abandoned by its caller.
const statusClientClosedRequest = 499

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrExport     = errors.New("export failed")
)

// Error tags a failure with the handler operation that produced it.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of kind raised by op.
func NewKind(op string, kind error) error { return &Error{Op: op, Kind: kind} }

// WrapKind classifies err as kind under op.
func WrapKind(op string, kind, err error) error { return &Error{Op: op, Kind: kind, Err: err} }

// Wrap tags err with op and keeps its own classification.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// classify maps an error onto a status code and a stable machine code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, wizard.ErrSessionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, wizard.ErrNotOnReview):
		return http.StatusConflict, "not_on_review"
	case errors.Is(err, repository.ErrInvalidLimit):
		return http.StatusBadRequest, "limit_exceeded"
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrInvalidEnum), errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, portal.ErrInvalidValue), errors.Is(err, portal.ErrUnknownSetting),
		errors.Is(err, wizard.ErrUnknownStep):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return statusClientClosedRequest, "cancelled"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
