// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the base error for all field-level validation
// failures. Callers check for it with errors.Is; the API layer maps it
// to HTTP 400.
var ErrValidation = errors.New("validation failed")

// Field-level validation errors. Each wraps ErrValidation so a single
// errors.Is check covers the whole family.
var (
	ErrNameRequired = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTooShort = fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	ErrNameTooLong  = fmt.Errorf("%w: name must be at most 100 characters", ErrValidation)

	ErrEmailRequired = fmt.Errorf("%w: email is required", ErrValidation)
	ErrEmailTooLong  = fmt.Errorf("%w: email must be at most 255 characters", ErrValidation)
	ErrInvalidEmail  = fmt.Errorf("%w: invalid email format", ErrValidation)
)
