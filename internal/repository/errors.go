package repository

import "errors"

// ErrNotFound is returned when a well-formed identifier matches no record.
// Callers distinguish it from driver/constraint failures with errors.Is.
var ErrNotFound = errors.New("record not found")
