package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a member account. State transitions go through the intention
// revealing mutators below; the service layer owns all mutation.
type User struct {
	ID            uuid.UUID
	Email         Email
	Password      Password
	RoleID        uuid.UUID
	EmailVerified bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a brand-new registration. The id stays uuid.Nil until the
// service assigns one at persistence time. New accounts start unverified;
// VerifyEmail is the only transition to verified.
func NewUser(email Email, password Password, roleID uuid.UUID) *User {
	return &User{
		Email:         email,
		Password:      password,
		RoleID:        roleID,
		EmailVerified: false,
	}
}

// VerifyEmail marks the account's email as verified. Idempotent.
func (u *User) VerifyEmail() {
	u.EmailVerified = true
}

// RegisterLogin records a successful login at now. Must be called only after
// password verification succeeds.
func (u *User) RegisterLogin(now time.Time) {
	u.LastLoginAt = &now
}
