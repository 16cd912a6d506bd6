package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/usersvc/accounts-api/internal/domain"
	"github.com/usersvc/accounts-api/internal/service/auth"
	"github.com/usersvc/accounts-api/internal/store"
)

// AccountService owns the account business logic: validation,
// uniqueness, registration, and credential verification.
type AccountService interface {
	// List returns all accounts ordered by creation time ascending.
	List(ctx context.Context) ([]*domain.Account, error)

	// GetByID retrieves an account by id. Fails with ErrInvalidID when
	// id <= 0 and store.ErrAccountNotFound when absent.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetByEmail performs a case-insensitive lookup. A blank email
	// yields store.ErrAccountNotFound without querying storage.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Create persists a new account without a password (administrative
	// creation). Fails with a domain validation error or
	// store.ErrEmailExists.
	Create(ctx context.Context, name, email string) (*domain.Account, error)

	// Update applies a partial update: nil or blank fields keep their
	// prior value, and at least one field must be supplied. The email
	// uniqueness recheck excludes the account's own id and only runs
	// when the normalized email actually changed.
	Update(ctx context.Context, id int64, name, email *string) (*domain.Account, error)

	// Delete removes an account, reporting whether it existed. Absence
	// is a normal outcome, not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// Register creates a password-bearing account with role "User" and
	// active status. Fails with ErrPasswordMismatch when the
	// confirmation differs.
	Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.Account, error)

	// Authenticate verifies credentials and, on success, updates the
	// account's last-login timestamp before returning it. Every
	// negative outcome is ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)

	// UpdateLastLogin refreshes the last-login timestamp, silently
	// no-oping when the account no longer exists.
	UpdateLastLogin(ctx context.Context, id int64) error
}

// accountService implements AccountService on top of the storage port.
type accountService struct {
	store    store.AccountStore
	db       *sql.DB
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewAccountService creates an AccountService. db may be nil when the
// store does not sit on a SQL database (the in-memory store), in which
// case operations run without an enclosing transaction.
func NewAccountService(
	accounts store.AccountStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		store:    accounts,
		db:       db,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With("component", "account_service"),
	}
}

// inTx runs fn against a transaction-bound store when a database is
// available, so read-then-write sequences commit atomically. Without a
// database the store is used directly.
func (s *accountService) inTx(ctx context.Context, fn func(accounts store.AccountStore) error) error {
	if s.db == nil {
		return fn(s.store)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.store.WithTx(tx))
	})
}

// List implements AccountService.List.
func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetByID implements AccountService.GetByID.
func (s *accountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve account", "error", err, "account_id", id)
		}
		return nil, err
	}
	return account, nil
}

// GetByEmail implements AccountService.GetByEmail.
func (s *accountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, store.ErrAccountNotFound
	}
	account, err := s.store.GetByEmail(ctx, normalized)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve account by email", "error", err)
		}
		return nil, err
	}
	return account, nil
}

// Create implements AccountService.Create.
func (s *accountService) Create(ctx context.Context, name, email string) (*domain.Account, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:     strings.TrimSpace(name),
		Email:    domain.NormalizeEmail(email),
		Role:     domain.DefaultRole,
		IsActive: true,
	}

	err := s.inTx(ctx, func(accounts store.AccountStore) error {
		exists, err := accounts.ExistsByEmail(ctx, account.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrEmailExists
		}
		return accounts.Create(ctx, account)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("attempted to create account with existing email")
			return nil, err
		}
		s.logger.Error("failed to create account", "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created", "account_id", account.ID)
	return account, nil
}

// Update implements AccountService.Update.
func (s *accountService) Update(ctx context.Context, id int64, name, email *string) (*domain.Account, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	// Blank strings count as "not supplied", matching the absent case.
	newName := suppliedValue(name)
	newEmail := suppliedValue(email)
	if newName == "" && newEmail == "" {
		return nil, ErrNoFieldsToUpdate
	}

	if newName != "" {
		if err := domain.ValidateName(newName); err != nil {
			return nil, err
		}
	}
	if newEmail != "" {
		if err := domain.ValidateEmail(newEmail); err != nil {
			return nil, err
		}
	}

	var updated *domain.Account
	err := s.inTx(ctx, func(accounts store.AccountStore) error {
		account, err := accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if newEmail != "" {
			normalized := domain.NormalizeEmail(newEmail)
			if normalized != account.Email {
				exists, err := accounts.ExistsByEmail(ctx, normalized, id)
				if err != nil {
					return err
				}
				if exists {
					return store.ErrEmailExists
				}
			}
			account.Email = normalized
		}
		if newName != "" {
			account.Name = strings.TrimSpace(newName)
		}

		if err := accounts.Update(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) || store.IsDuplicateError(err) {
			return nil, err
		}
		s.logger.Error("failed to update account", "error", err, "account_id", id)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("account updated", "account_id", id)
	return updated, nil
}

// Delete implements AccountService.Delete.
func (s *accountService) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidID
	}
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete account", "error", err, "account_id", id)
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	if deleted {
		s.logger.Info("account deleted", "account_id", id)
	}
	return deleted, nil
}

// Register implements AccountService.Register.
func (s *accountService) Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.Account, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Name:         strings.TrimSpace(name),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.DefaultRole,
		IsActive:     true,
	}

	err = s.inTx(ctx, func(accounts store.AccountStore) error {
		exists, err := accounts.ExistsByEmail(ctx, account.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrEmailExists
		}
		return accounts.Create(ctx, account)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("attempted to register with existing email")
			return nil, err
		}
		s.logger.Error("failed to register account", "error", err)
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Info("account registered", "account_id", account.ID)
	return account, nil
}

// Authenticate implements AccountService.Authenticate. Unknown email,
// inactive account, missing hash, and wrong password all return the same
// ErrInvalidCredentials, and none of them is logged above debug level,
// so the caller learns nothing about which check failed.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.store.GetByEmail(ctx, normalized)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("authentication failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up account for authentication", "error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !account.IsActive || account.PasswordHash == "" {
		s.logger.Debug("authentication failed: account not authenticatable", "account_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(account.PasswordHash, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch", "account_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	account.LastLoginAt = &now
	if err := s.store.Update(ctx, account); err != nil {
		// The account was deleted between lookup and touch; treat it
		// like any other failed authentication.
		if store.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to record login time", "error", err, "account_id", account.ID)
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}

	s.logger.Info("account authenticated", "account_id", account.ID)
	return account, nil
}

// UpdateLastLogin implements AccountService.UpdateLastLogin.
func (s *accountService) UpdateLastLogin(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	err := s.inTx(ctx, func(accounts store.AccountStore) error {
		account, err := accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		account.LastLoginAt = &now
		return accounts.Update(ctx, account)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil
		}
		s.logger.Error("failed to update last login", "error", err, "account_id", id)
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// suppliedValue collapses nil and blank pointers into "", the internal
// marker for "field not supplied".
func suppliedValue(v *string) string {
	if v == nil {
		return ""
	}
	if strings.TrimSpace(*v) == "" {
		return ""
	}
	return *v
}
