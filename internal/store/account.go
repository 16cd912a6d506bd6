package store

import (
	"context"
	"database/sql"

	"github.com/usersvc/accounts-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
// Implementations may be backed by any durable store as long as they
// honor the normalized-email uniqueness constraint; the service layer
// performs an optimistic ExistsByEmail check, but the store itself is
// the final arbiter and must surface races as ErrEmailExists.
type AccountStore interface {
	// List returns all accounts ordered by creation time ascending.
	List(ctx context.Context) ([]*domain.Account, error)

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetByEmail retrieves an account by its normalized email address.
	// The caller is expected to normalize the email first.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Create saves a new account and assigns its ID and CreatedAt.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, account *domain.Account) error

	// Update modifies an existing account. The caller provides the
	// complete account record.
	// Returns ErrAccountNotFound if the account does not exist.
	// Returns ErrEmailExists if the new email collides with another account.
	Update(ctx context.Context, account *domain.Account) error

	// Delete removes an account by ID. It reports whether a record
	// existed and was removed; absence is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// ExistsByEmail reports whether an account with the given normalized
	// email exists. When excludeID is non-zero, the account with that ID
	// is ignored, which is how updates recheck uniqueness against
	// everyone but themselves.
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)

	// WithTx returns an AccountStore bound to the provided transaction,
	// so multiple operations commit or roll back together. The
	// transaction is created and managed by the caller (typically via
	// RunInTransaction).
	WithTx(tx *sql.Tx) AccountStore
}
