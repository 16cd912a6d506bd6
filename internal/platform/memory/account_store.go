// Package memory provides an in-memory implementation of the store
// interfaces. It backs the service and handler tests and is usable as an
// embedded store for throwaway environments; it honors the same
// contract as the PostgreSQL implementation, including normalized-email
// uniqueness and creation-order listing.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/usersvc/accounts-api/internal/domain"
	"github.com/usersvc/accounts-api/internal/store"
)

// AccountStore is a mutex-guarded map of accounts keyed by id.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	nextID   int64
}

// NewAccountStore creates an empty in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[int64]*domain.Account),
		nextID:   1,
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

// WithTx returns the store itself: the in-memory implementation applies
// every operation immediately, so a transaction boundary is a no-op.
func (s *AccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return s
}

// List implements store.AccountStore.List.
func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, copyAccount(a))
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

// GetByID implements store.AccountStore.GetByID.
func (s *AccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	return copyAccount(a), nil
}

// GetByEmail implements store.AccountStore.GetByEmail. The email is
// expected to be normalized already.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return copyAccount(a), nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// Create implements store.AccountStore.Create.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == account.Email {
			return store.ErrEmailExists
		}
	}

	account.ID = s.nextID
	s.nextID++
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.accounts[account.ID] = copyAccount(account)
	return nil
}

// Update implements store.AccountStore.Update.
func (s *AccountStore) Update(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return store.ErrAccountNotFound
	}
	for _, a := range s.accounts {
		if a.ID != account.ID && a.Email == account.Email {
			return store.ErrEmailExists
		}
	}
	s.accounts[account.ID] = copyAccount(account)
	return nil
}

// Delete implements store.AccountStore.Delete.
func (s *AccountStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return false, nil
	}
	delete(s.accounts, id)
	return true, nil
}

// ExistsByEmail implements store.AccountStore.ExistsByEmail.
func (s *AccountStore) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// copyAccount returns a defensive copy so callers cannot mutate stored
// state through returned pointers.
func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	if a.LastLoginAt != nil {
		t := *a.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}
