// Package dto provides data transfer objects for the profile HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProfileResponse represents the API response for a profile.
type ProfileResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	SexID        int64      `json:"sex_id"`
	DNI          string     `json:"dni"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	FullName     string     `json:"full_name"`
	BirthDate    string     `json:"birth_date"`
	ContactEmail string     `json:"contact_email"`
	Phone        *string    `json:"phone,omitempty"`
	AddressID    *int64     `json:"address_id,omitempty"`
	SocialLinkID *int64     `json:"social_link_id,omitempty"`
	PhotoID      *uuid.UUID `json:"photo_id,omitempty"`
	Verified     bool       `json:"verified"`
	Complete     bool       `json:"complete"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
