package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository backends so callers can
// detect them without knowing which backend is in use.
var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = goerr.New("record not found")

	// ErrDuplicateName is returned when an activity with the same name
	// already exists
	ErrDuplicateName = goerr.New("activity name already exists")
)
