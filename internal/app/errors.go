package service

import "errors"

// Sentinel kinds for service operations.
var ErrNoTeam = errors.New("no team selected")
