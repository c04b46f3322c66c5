package apperr

import "errors"

// Sentinel errors shared between the data stores and the domain services.
// They live in a leaf package so both sides can match on them without
// importing each other.
var (
	ErrNotFound   = errors.New("document not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrNotOwner   = errors.New("viewer is not the event owner")
)
