package usecase

import "errors"

// Sentinel errors the HTTP layer maps to status codes. Services wrap
// them with fmt.Errorf("%w: ...") so errors.Is keeps working.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
