package store

import "errors"

// Sentinel kinds for persistence outcomes.
var (
	// ErrNotFound reports that no (readable) snapshot exists for a team.
	// This is a normal outcome, never surfaced to the user as an error.
	ErrNotFound = errors.New("no saved squad")

	// ErrPersist reports a write failure.
	ErrPersist = errors.New("persist squad failed")
)
