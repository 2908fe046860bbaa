package repository

import "errors"

// ErrNotFound is returned when a lookup matches no document. Callers can
// tell "absent" apart from a failed query, which collapses only at the
// HTTP boundary.
var ErrNotFound = errors.New("not found")
