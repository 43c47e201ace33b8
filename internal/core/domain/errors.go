package domain

import "errors"

// Authentication errors
var (
	ErrUnauthenticated        = errors.New("not authenticated")
	ErrInvalidSession         = errors.New("invalid session")
	ErrSessionExpired         = errors.New("session expired")
	ErrIdentityNotFound       = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidExternalSession = errors.New("invalid session id")
)

// Record errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidStatus = errors.New("invalid status")
	// ErrDuplicate is returned by stores when an insert violates a unique field.
	ErrDuplicate = errors.New("duplicate record")
)

// NotFoundError reports a missing record of a given kind. It matches ErrNotFound.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string { return e.Kind + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
