package wizard

import "errors"

var (
	ErrNotOnReview      = errors.New("submit is only allowed from the review step")
	ErrAlreadySubmitted = errors.New("application already submitted")
	ErrUnknownStep      = errors.New("unknown wizard step")
	ErrSessionNotFound  = errors.New("application session not found")
)
