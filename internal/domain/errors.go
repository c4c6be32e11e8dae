package domain

import "errors"

// Sentinel errors shared across services. Concern-specific sentinels live
// next to their entity (see signup.go, participation.go, user.go).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
