package store

import "errors"

// ErrNotFound is returned by the finder methods when no live record
// matches. Callers distinguish it from storage failures via errors.Is.
var ErrNotFound = errors.New("record not found")
