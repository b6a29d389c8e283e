package roster

import "errors"

// Sentinel kinds for roster fetch failures.
var (
	ErrFetch  = errors.New("roster fetch failed")
	ErrStatus = errors.New("roster backend returned unexpected status")
	ErrDecode = errors.New("roster decode failed")
)
