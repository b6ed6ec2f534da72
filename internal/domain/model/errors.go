package model

import "errors"

// Sentinel error kinds shared by the engines. Callers match them with errors.Is.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDuplicateApplication = errors.New("duplicate application")
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
)
