package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces one-way password hashes for storage.
type PasswordHasher interface {
	// Hash returns a salted hash of the plaintext password. The salt is
	// randomized per call, so two hashes of the same input differ;
	// hashes are only ever checked through a PasswordVerifier, never by
	// equality.
	Hash(password string) (string, error)
}

// PasswordVerifier compares stored hashes against plaintext candidates.
type PasswordVerifier interface {
	// Compare returns nil when the plaintext matches the hash, and an
	// error otherwise. The plaintext is never logged or retained.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt at the default
// cost.
type BcryptHasher struct{}

// NewBcryptHasher creates a new BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
