// Package model contains the console's records and their closed value sets.
package model

import "errors"

// Sentinel errors for model validation.
var (
	ErrInvalidEnum       = errors.New("invalid enum value")
	ErrInvalidValue      = errors.New("invalid value")
	ErrInvalidTransition = errors.New("invalid status transition")
)
