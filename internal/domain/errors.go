package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a user ID is malformed or not positive.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrEmptyEmail is returned when an email is missing.
	ErrEmptyEmail = fmt.Errorf("%w: email cannot be empty", ErrValidation)

	// ErrEmptyPassword is returned when a password is missing.
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)

	// ErrPasswordTooLong is returned when a password is longer than
	// MaxPasswordBytes.
	ErrPasswordTooLong = fmt.Errorf("%w: password exceeds %d bytes", ErrValidation, MaxPasswordBytes)

	// ErrInvalidRole is returned for a role outside the known set.
	ErrInvalidRole = fmt.Errorf("%w: invalid role", ErrValidation)
)
