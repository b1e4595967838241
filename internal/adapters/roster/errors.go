package roster

import "errors"

// Sentinel kinds for roster loading.
var (
	ErrInvalidRoster = errors.New("invalid roster")
	ErrEmptyRoster   = errors.New("roster has no members")
)
