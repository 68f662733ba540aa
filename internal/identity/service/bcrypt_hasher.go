// Package service provides identity-related infrastructure services, currently
// the password hashing strategies behind domain.PasswordHasher.
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptWorkFactor is fixed; raising it invalidates no existing hashes since
// the cost is embedded in each digest.
const bcryptWorkFactor = 10

// BcryptHasher implements domain.PasswordHasher using bcrypt. It is the
// default strategy.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the fixed work factor.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptWorkFactor}
}

// Hash produces a salted bcrypt digest of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify runs bcrypt's constant-time comparison of plaintext against digest.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
