package usecase

import "errors"

// Sentinel errors returned by usecase services. The HTTP layer maps
// these onto response statuses.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
