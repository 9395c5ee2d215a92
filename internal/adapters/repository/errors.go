package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidLimit = errors.New("invalid limit")
	ErrConflict     = errors.New("record already exists")
	ErrFixtures     = errors.New("invalid fixtures")
)
