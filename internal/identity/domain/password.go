package domain

import (
	"unicode"

	"github.com/socioclub/membership/internal/errors"
)

// Password strength bounds.
const (
	minPasswordLength = 8
	maxPasswordLength = 100
)

// PasswordHasher is the pluggable hashing strategy behind the Password value
// object. Implementations must use a slow, salted one-way function with a
// fixed work factor and a constant-time verify.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Password is an immutable credential holding only a one-way hash; plaintext
// never survives construction. The strength rules live here, the algorithm
// lives in the PasswordHasher.
type Password struct {
	hash string
}

// NewPassword validates plaintext strength (8-100 characters, at least one
// uppercase letter and one digit), hashes it, and returns the Password.
// Fails with ErrWeakPassword when a rule is violated.
func NewPassword(plaintext string, hasher PasswordHasher) (Password, error) {
	if len(plaintext) < minPasswordLength || len(plaintext) > maxPasswordLength {
		return Password{}, ErrWeakPassword
	}

	var hasUpper, hasDigit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return Password{}, ErrWeakPassword
	}

	digest, err := hasher.Hash(plaintext)
	if err != nil {
		return Password{}, errors.Wrap(err, "failed to hash password")
	}
	return Password{hash: digest}, nil
}

// PasswordFromHash reconstructs a Password from an already committed digest,
// bypassing the strength checks. Used only when rehydrating from storage.
func PasswordFromHash(hash string) (Password, error) {
	if hash == "" {
		return Password{}, errors.Wrap(errors.ErrInvalidInput, "password hash must not be empty")
	}
	return Password{hash: hash}, nil
}

// Verify compares a candidate plaintext against the stored hash. Returns
// false for an empty candidate and never errors on mismatch.
func (p Password) Verify(candidate string, hasher PasswordHasher) bool {
	if candidate == "" {
		return false
	}
	return hasher.Verify(candidate, p.hash)
}

// Hash returns the stored digest for persistence.
func (p Password) Hash() string {
	return p.hash
}

// String redacts the hash so it never leaks through formatting or logs.
func (p Password) String() string {
	return "[redacted]"
}

// IsZero reports whether the Password was never constructed.
func (p Password) IsZero() bool {
	return p.hash == ""
}
