package formation

import "errors"

// Sentinel kinds for catalog lookups.
var ErrNotFound = errors.New("formation not found")
