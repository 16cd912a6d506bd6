// Package auth implements the credential issuer: password hashing and
// verification, and signed session-token issuance.
package auth

import (
	"context"
	"time"

	"github.com/usersvc/accounts-api/internal/domain"
)

// JWTService defines operations for issuing and validating session
// tokens.
type JWTService interface {
	// IssueToken creates a signed token asserting the account's
	// identity: subject (account id), email, display name, role, a
	// unique token id, and an expiration. Returns the compact token
	// string or an error if signing fails.
	IssueToken(ctx context.Context, account *domain.Account) (string, error)

	// ValidateToken validates a token string and extracts its claims.
	// Returns ErrExpiredToken when the token has expired and
	// ErrInvalidToken for every other validation failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a session token.
type Claims struct {
	// AccountID is the account the token was issued for.
	AccountID int64

	// Email, Name and Role mirror the account fields at issuance time.
	// Role is carried as an opaque tag; nothing here enforces it.
	Email string
	Name  string
	Role  string

	// ID is the unique token identifier (jti claim).
	ID string

	IssuedAt  time.Time
	ExpiresAt time.Time
}
