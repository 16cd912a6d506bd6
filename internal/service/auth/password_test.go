package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, verifier.Compare(hash, "secret1"))
	assert.Error(t, verifier.Compare(hash, "wrong"))
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	// Salts are randomized, so the same input must not produce the same
	// hash; both still verify.
	assert.NotEqual(t, first, second)

	verifier := NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(first, "secret1"))
	assert.NoError(t, verifier.Compare(second, "secret1"))
}

func TestCompareRejectsEmptyHash(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()
	assert.Error(t, verifier.Compare("", "anything"))
}
