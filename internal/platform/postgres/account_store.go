// Package postgres implements the store interfaces against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/usersvc/accounts-api/internal/domain"
	"github.com/usersvc/accounts-api/internal/store"
)

// accountColumns is the column list every account query selects, in scan
// order.
const accountColumns = "id, name, email, password_hash, role, created_at, last_login_at, is_active"

// AccountStore implements store.AccountStore using a PostgreSQL
// database as the storage backend. The accounts table carries a unique
// index on email, which is the authoritative uniqueness guarantee; the
// service-level existence check is only an optimistic fast path.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a PostgreSQL implementation of
// store.AccountStore. The connection (or transaction) is initialized and
// managed by the caller. If logger is nil, the default logger is used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

// WithTx returns an AccountStore bound to the given transaction.
func (s *AccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &AccountStore{db: tx, logger: s.logger}
}

// List implements store.AccountStore.List. Accounts come back ordered by
// creation time ascending, with the id as a tiebreaker so the order is
// stable for rows created in the same instant.
func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", mapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", "error", cerr)
		}
	}()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", mapError(err))
	}
	return accounts, nil
}

// GetByID implements store.AccountStore.GetByID.
func (s *AccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, mapError(err)
	}
	return account, nil
}

// GetByEmail implements store.AccountStore.GetByEmail. The email is
// expected to be normalized already; no case folding happens here.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email = $1", email)
	account, err := scanAccount(row)
	if err != nil {
		return nil, mapError(err)
	}
	return account, nil
}

// Create implements store.AccountStore.Create. The database assigns the
// id and creation timestamp, which are written back into the account.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO accounts (name, email, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.IsActive,
	)
	if err := row.Scan(&account.ID, &account.CreatedAt); err != nil {
		return fmt.Errorf("failed to create account: %w", mapError(err))
	}
	return nil
}

// Update implements store.AccountStore.Update.
func (s *AccountStore) Update(ctx context.Context, account *domain.Account) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts
		 SET name = $1, email = $2, password_hash = $3, role = $4, last_login_at = $5, is_active = $6
		 WHERE id = $7`,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.LastLoginAt,
		account.IsActive,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", mapError(err))
	}
	return checkRowsAffected(result)
}

// Delete implements store.AccountStore.Delete.
func (s *AccountStore) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", mapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// ExistsByEmail implements store.AccountStore.ExistsByEmail.
func (s *AccountStore) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM accounts WHERE email = $1 AND ($2 = 0 OR id <> $2)
		 )`,
		email, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", mapError(err))
	}
	return exists, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		account     domain.Account
		lastLoginAt sql.NullTime
	)
	if err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&lastLoginAt,
		&account.IsActive,
	); err != nil {
		return nil, err
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		account.LastLoginAt = &t
	}
	return &account, nil
}
