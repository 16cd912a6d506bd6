package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/usersvc/accounts-api/internal/api/shared"
	"github.com/usersvc/accounts-api/internal/service"
	"github.com/usersvc/accounts-api/internal/service/auth"
)

// AuthHandler handles registration and login API requests.
type AuthHandler struct {
	accounts   service.AccountService
	jwtService auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts service.AccountService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	token, err := h.jwtService.IssueToken(r.Context(), account)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "account_id", account.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	user := NewAccountResponse(account)
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Registration successful",
		Token:   token,
		User:    &user,
	})
}

// Login handles POST /api/auth/login. Every failed attempt produces the
// same 401 body regardless of the cause.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithJSON(w, r, http.StatusUnauthorized, AuthResponse{
				Success: false,
				Message: "Invalid email or password",
			})
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	token, err := h.jwtService.IssueToken(r.Context(), account)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "account_id", account.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	user := NewAccountResponse(account)
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    &user,
	})
}
