package domain

import "errors"

// ErrConflict is the conflict-class storage error; the HTTP boundary maps it
// to 409 instead of the generic 500.
var ErrConflict = errors.New("conflict")
