// Package service provides the account business-logic layer.
package service

import "errors"

// Sentinel errors returned by the account service. Callers check them
// with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrInvalidID indicates a non-positive account id was supplied.
	ErrInvalidID = errors.New("id must be a positive integer")

	// ErrNoFieldsToUpdate indicates a partial update supplied neither a
	// name nor an email.
	ErrNoFieldsToUpdate = errors.New("at least one field (name or email) must be provided")

	// ErrPasswordMismatch indicates the registration password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidCredentials is the single negative outcome of
	// Authenticate. Unknown email, wrong password, and inactive account
	// all collapse to this value so callers cannot tell which one
	// occurred.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
