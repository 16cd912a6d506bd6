package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultRole is the role tag assigned to newly registered accounts.
// The role is carried as an opaque claim; nothing in this service
// enforces permissions based on it.
const DefaultRole = "User"

const (
	minNameLength  = 2
	maxNameLength  = 100
	maxEmailLength = 255
)

// Account represents a user account.
// PasswordHash is never serialized and never leaves the service layer;
// accounts created administratively (without a password) carry an empty
// hash and cannot authenticate.
type Account struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// NormalizeEmail returns the canonical form of an email address:
// surrounding whitespace removed, all characters lowercased.
// Storage and uniqueness comparison always operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateName checks the display-name constraints: required after
// trimming, and between 2 and 100 codepoints long.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	switch n := utf8.RuneCountInString(trimmed); {
	case n < minNameLength:
		return ErrNameTooShort
	case n > maxNameLength:
		return ErrNameTooLong
	}
	return nil
}

// ValidateEmail checks the email constraints on the normalized form:
// required, at most 255 bytes, and shaped like local@domain.tld.
func ValidateEmail(email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return ErrEmailRequired
	}
	if len(normalized) > maxEmailLength {
		return ErrEmailTooLong
	}
	if !emailShapeOK(normalized) {
		return ErrInvalidEmail
	}
	return nil
}

// emailShapeOK performs the basic shape check used for account emails:
// a non-empty local part without whitespace or a second '@', and a domain
// containing an interior dot. It intentionally stops short of full
// RFC 5322 parsing.
func emailShapeOK(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if strings.ContainsAny(local, " \t\r\n") || strings.ContainsAny(domain, " \t\r\n") {
		return false
	}
	if strings.ContainsRune(domain, '@') {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
