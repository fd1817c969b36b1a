package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: no record matches the key
//   - ErrConflict: a uniqueness constraint already holds a row for the key
//   - ErrAlreadySet: a set-once field already carries a different value
//   - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrAlreadySet  = errors.New("already set")
	ErrUnavailable = errors.New("unavailable")
)
