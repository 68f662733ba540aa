package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// Argon2Hasher implements domain.PasswordHasher using Argon2id with the
// interactive policy. Selected via the PASSWORD_HASHER config.
type Argon2Hasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewArgon2Hasher creates an Argon2Hasher.
func NewArgon2Hasher() (*Argon2Hasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create argon2 hasher")
	}
	return &Argon2Hasher{hasher: hasher}, nil
}

// Hash produces a salted Argon2id digest of plaintext.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	return h.hasher.Hash([]byte(plaintext))
}

// Verify performs a constant-time comparison of plaintext against digest.
func (h *Argon2Hasher) Verify(plaintext, digest string) bool {
	ok, err := h.hasher.Verify([]byte(plaintext), digest)
	if err != nil {
		return false
	}
	return ok
}
