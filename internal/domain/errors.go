package domain

import "errors"

// Error kinds shared by every service. Callers wrap them with context using
// fmt.Errorf("%w: ...") and the transport layer maps them with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("conflict")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnavailable      = errors.New("unavailable")
	ErrInternal         = errors.New("internal error")
)
