package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// fakeHasher is a reversible stand-in so domain tests stay independent of the
// real hashing strategies (covered in the service package).
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (fakeHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", assert.AnError }
func (failingHasher) Verify(string, string) bool  { return false }

func TestNewPassword(t *testing.T) {
	password, err := NewPassword("Password1", fakeHasher{})
	require.NoError(t, err)

	assert.Equal(t, "hashed:Password1", password.Hash())
	assert.True(t, password.Verify("Password1", fakeHasher{}))
	assert.False(t, password.Verify("Password2", fakeHasher{}))
	assert.False(t, password.Verify("", fakeHasher{}))
}

func TestNewPassword_Weak(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"too short", "Pass1"},
		{"too long", "A1" + strings.Repeat("a", 99)},
		{"no uppercase", "password1"},
		{"no digit", "Passwordd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPassword(tt.plaintext, fakeHasher{})
			assert.ErrorIs(t, err, ErrWeakPassword)
			assert.Equal(t, apperrors.CodeWeakPassword, apperrors.CodeOf(err))
		})
	}
}

func TestNewPassword_HasherFailure(t *testing.T) {
	_, err := NewPassword("Password1", failingHasher{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrWeakPassword)
}

func TestPasswordFromHash(t *testing.T) {
	password, err := PasswordFromHash("hashed:Password1")
	require.NoError(t, err)
	assert.True(t, password.Verify("Password1", fakeHasher{}))

	_, err = PasswordFromHash("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPassword_StringRedacts(t *testing.T) {
	password, err := NewPassword("Password1", fakeHasher{})
	require.NoError(t, err)

	assert.Equal(t, "[redacted]", password.String())
	assert.NotContains(t, fmt.Sprintf("%v %s", password, password), password.Hash())
}
