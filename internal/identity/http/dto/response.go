// Package dto provides data transfer objects for the identity HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse represents the API response for a user.
// It excludes the password hash and provides a clean external representation
// of the user domain model.
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	RoleID        uuid.UUID  `json:"role_id"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProfileSummaryResponse is the profile part of a registration response.
type ProfileSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	DNI       string    `json:"dni"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate string    `json:"birth_date"`
}

// RegisterUserResponse represents the API response for a registration.
type RegisterUserResponse struct {
	User    UserResponse           `json:"user"`
	Profile ProfileSummaryResponse `json:"profile"`
}

// ListUsersResponse represents a paginated list of users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
