package api

import (
	"time"

	"github.com/usersvc/accounts-api/internal/domain"
)

// Common request/response structures

// AccountResponse is the public representation of an account. The
// password hash is never exposed.
type AccountResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// NewAccountResponse converts a domain account into its API shape.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Name:        account.Name,
		Email:       account.Email,
		Role:        account.Role,
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
		IsActive:    account.IsActive,
	}
}

// NewAccountResponseList converts a slice of domain accounts.
func NewAccountResponseList(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, NewAccountResponse(account))
	}
	return out
}

// CreateAccountRequest defines the payload for administrative account
// creation. Length and shape rules are enforced by the service layer.
type CreateAccountRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
}

// UpdateAccountRequest defines the payload for partial account updates.
// Omitted fields keep their current values.
type UpdateAccountRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required"`
	Password        string `json:"password"         validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the envelope for registration and login outcomes.
// Failed logins reuse it with Success=false and no token, so the
// response shape never reveals which check failed.
type AuthResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Token   string           `json:"token,omitempty"`
	User    *AccountResponse `json:"user,omitempty"`
}
