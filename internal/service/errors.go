package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/userbase-api/internal/domain"
)

// Service error classifications. Callers check them with errors.Is; the API
// layer maps each classification to a status code.
var (
	// ErrConflict indicates the request collides with existing data.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the addressed resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the request itself is unacceptable. It is the
	// same sentinel domain validation errors wrap, so both classify alike.
	ErrValidation = domain.ErrValidation
)

// User service errors.
var (
	// ErrEmailTaken indicates another user already owns the email.
	ErrEmailTaken = fmt.Errorf("%w: email already taken", ErrConflict)

	// ErrUserNotFound indicates no user has the given ID.
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrNotFound)

	// ErrSelfDelete indicates a user tried to delete their own account.
	ErrSelfDelete = fmt.Errorf("%w: cannot delete your own account", ErrValidation)
)
