package models

import "errors"

var (
	// ErrNotFound is returned by the persistence layer for unknown records
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a match was terminated by someone else
	// between being loaded and being saved
	ErrConflict = errors.New("match was modified concurrently")
)

// MatchFilter selects matches; zero fields match anything
type MatchFilter struct {
	Username string
	Status   MatchStatus
}
