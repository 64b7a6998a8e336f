package store

import (
	"errors"
	"fmt"
)

// Generic outcomes every store implementation reports. Backend packages
// translate driver errors into these so callers never see driver types.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")
)

// User-specific outcomes. Each wraps its generic parent, so
// errors.Is(ErrEmailExists, ErrDuplicate) holds.
var (
	// ErrUserNotFound is returned when no row matches the requested id or email,
	// and by Update and Delete when they affect no rows.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists is returned when a write would break the unique email index.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
