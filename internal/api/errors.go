package api

import (
	"errors"
	"net/http"

	"github.com/usersvc/accounts-api/internal/domain"
	"github.com/usersvc/accounts-api/internal/service"
	"github.com/usersvc/accounts-api/internal/service/auth"
	"github.com/usersvc/accounts-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrPasswordMismatch):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// given error. Validation errors carry their own safe text; everything
// else maps to a fixed string.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, store.ErrAccountNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Validation messages are written for users; pass them through.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrPasswordMismatch):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}
