package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usersvc/accounts-api/internal/domain"
	"github.com/usersvc/accounts-api/internal/platform/memory"
	"github.com/usersvc/accounts-api/internal/service/auth"
	"github.com/usersvc/accounts-api/internal/store"
)

func newTestService(t *testing.T) (AccountService, *memory.AccountStore) {
	t.Helper()
	accounts := memory.NewAccountStore()
	svc := NewAccountService(accounts, nil, auth.NewBcryptHasher(), auth.NewBcryptVerifier(), nil)
	return svc, accounts
}

func strPtr(s string) *string { return &s }

func TestCreateNormalizesAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "  Ada Lovelace  ", " ADA@EX.COM ")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, "ada@ex.com", created.Email)
	assert.Equal(t, domain.DefaultRole, created.Role)
	assert.True(t, created.IsActive)
	assert.Empty(t, created.PasswordHash)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@ex.com", got.Email)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		argName string
		email   string
		wantErr error
	}{
		{"blank name", "  ", "ada@ex.com", domain.ErrNameRequired},
		{"short name", "A", "ada@ex.com", domain.ErrNameTooShort},
		{"blank email", "Ada", "", domain.ErrEmailRequired},
		{"malformed email", "Ada", "not-an-email", domain.ErrInvalidEmail},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := newTestService(t)
			_, err := svc.Create(ctx, tt.argName, tt.email)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateConflictIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "A", "a@b.com")
	require.ErrorIs(t, err, domain.ErrNameTooShort)

	_, err = svc.Create(ctx, "Aa", "a@b.com")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Bb", "a@b.com")
	assert.ErrorIs(t, err, store.ErrEmailExists)

	// Case and whitespace differences still collide.
	_, err = svc.Create(ctx, "Cc", "  A@B.COM ")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.GetByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = svc.GetByID(ctx, -3)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestGetByEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)

	got, err := svc.GetByEmail(ctx, " ADA@EX.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ada@ex.com", got.Email)

	// Blank input resolves to not-found without touching storage.
	_, err = svc.GetByEmail(ctx, "   ")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)

	_, err = svc.GetByEmail(ctx, "nobody@ex.com")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestUpdatePartialSemantics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)

	// Name only: email keeps its prior value.
	updated, err := svc.Update(ctx, created.ID, strPtr("Ada Lovelace"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "ada@ex.com", updated.Email)

	// Email only: name keeps its prior value, email is normalized.
	updated, err = svc.Update(ctx, created.ID, nil, strPtr(" NEW@EX.COM "))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "new@ex.com", updated.Email)
}

func TestUpdateRequiresAField(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, nil, nil)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	// Blank strings count as absent, not as values.
	_, err = svc.Update(ctx, created.ID, strPtr("  "), strPtr(""))
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	// No mutation happened.
	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@ex.com", got.Email)
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Update(ctx, 42, nil, strPtr("x@y.com"))
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestUpdateEmailConflictExcludesSelf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	ada, err := svc.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Bob", "bob@ex.com")
	require.NoError(t, err)

	// Taking another account's email is a conflict.
	_, err = svc.Update(ctx, ada.ID, nil, strPtr("bob@ex.com"))
	assert.ErrorIs(t, err, store.ErrEmailExists)

	// Re-submitting your own email (any case) is not.
	updated, err := svc.Update(ctx, ada.ID, nil, strPtr("ADA@EX.COM"))
	require.NoError(t, err)
	assert.Equal(t, "ada@ex.com", updated.Email)
}

// existsSpy fails the test if the uniqueness check runs, which must not
// happen for updates that leave the email untouched.
type existsSpy struct {
	store.AccountStore
	t *testing.T
}

func (s *existsSpy) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	s.t.Errorf("ExistsByEmail called for an update that does not change the email")
	return false, nil
}

func TestUpdateNameOnlySkipsUniquenessCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	accounts := memory.NewAccountStore()
	seeded := NewAccountService(accounts, nil, auth.NewBcryptHasher(), auth.NewBcryptVerifier(), nil)
	created, err := seeded.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)

	spied := NewAccountService(&existsSpy{AccountStore: accounts, t: t}, nil, auth.NewBcryptHasher(), auth.NewBcryptVerifier(), nil)
	_, err = spied.Update(ctx, created.ID, strPtr("Ada Lovelace"), nil)
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Delete(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)

	deleted, err := svc.Delete(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, deleted)

	created, err := svc.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)

	deleted, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.Register(ctx, "Ada Lovelace", "ADA@EX.COM", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ada@ex.com", account.Email)
	assert.Equal(t, "User", account.Role)
	assert.True(t, account.IsActive)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "secret1", account.PasswordHash)

	authed, err := svc.Authenticate(ctx, "ada@ex.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, account.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "ada@ex.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, "Ada", "ada@ex.com", "secret1", "secret2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, "Ada", "ada@ex.com", "secret1", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Imposter", "Ada@Ex.Com", "secret1", "secret1")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestAuthenticateNegativeOutcomesAreIndistinguishable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, accounts := newTestService(t)

	active, err := svc.Register(ctx, "Ada", "ada@ex.com", "secret1", "secret1")
	require.NoError(t, err)

	inactive, err := svc.Register(ctx, "Bob", "bob@ex.com", "secret1", "secret1")
	require.NoError(t, err)
	inactive.IsActive = false
	require.NoError(t, accounts.Update(ctx, inactive))

	// Wrong password, unknown email, inactive account, blank inputs:
	// all the same error value.
	for name, attempt := range map[string][2]string{
		"wrong password":   {"ada@ex.com", "nope"},
		"unknown email":    {"ghost@ex.com", "secret1"},
		"inactive account": {"bob@ex.com", "secret1"},
		"blank email":      {"", "secret1"},
		"blank password":   {"ada@ex.com", ""},
	} {
		_, err := svc.Authenticate(ctx, attempt[0], attempt[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials, name)
	}

	// The active account is untouched by the failed attempts.
	got, err := svc.GetByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastLoginAt)
}

func TestAuthenticateUpdatesLastLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	account, err := svc.Register(ctx, "Ada", "ada@ex.com", "secret1", "secret1")
	require.NoError(t, err)
	require.Nil(t, account.LastLoginAt)

	before := time.Now().UTC()
	authed, err := svc.Authenticate(ctx, "ada@ex.com", "secret1")
	after := time.Now().UTC()
	require.NoError(t, err)

	require.NotNil(t, authed.LastLoginAt)
	assert.False(t, authed.LastLoginAt.Before(before))
	assert.False(t, authed.LastLoginAt.After(after))

	// The timestamp is persisted, not just set on the returned value.
	got, err := svc.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
}

func TestAuthenticateAccountWithoutPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Administrative creation never sets a hash; such accounts cannot
	// log in no matter what password is offered.
	_, err := svc.Create(ctx, "Svc Account", "svc@ex.com")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "svc@ex.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "svc@ex.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateLastLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.UpdateLastLogin(ctx, 0), ErrInvalidID)

	// Missing account is a silent no-op.
	assert.NoError(t, svc.UpdateLastLogin(ctx, 999))

	created, err := svc.Create(ctx, "Ada", "ada@ex.com")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateLastLogin(ctx, created.ID))

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)
}

func TestListOrdering(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, email := range []string{"a@ex.com", "b@ex.com", "c@ex.com"} {
		_, err := svc.Create(ctx, "User "+email, email)
		require.NoError(t, err)
	}

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "a@ex.com", accounts[0].Email)
	assert.Equal(t, "b@ex.com", accounts[1].Email)
	assert.Equal(t, "c@ex.com", accounts[2].Email)
}
