// Package domain defines the user profile entity and its business errors.
// Exactly one profile exists per user; the uniqueness of user id and DNI is
// enforced by the service layer and the store's constraints, not here.
package domain

import (
	"time"

	"github.com/google/uuid"

	identitydomain "github.com/socioclub/membership/internal/identity/domain"
)

// UserProfile is the member's personal data sheet, linked one-to-one to a
// user. Required fields are set at construction; optional contact fields go
// through the mutators. Field validation (DNI format, birth date bounds)
// belongs to the validator collaborator before the entity is touched.
type UserProfile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	SexID        int64
	DNI          string
	FirstName    string
	LastName     string
	BirthDate    time.Time
	ContactEmail identitydomain.Email
	Phone        *string
	AddressID    *int64
	SocialLinkID *int64
	PhotoID      *uuid.UUID
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserProfile creates a profile with all required fields at once. The id
// stays uuid.Nil until the service assigns one at persistence time; optional
// fields default to nil and the profile starts unverified.
func NewUserProfile(
	userID uuid.UUID,
	sexID int64,
	dni string,
	firstName string,
	lastName string,
	birthDate time.Time,
	contactEmail identitydomain.Email,
) *UserProfile {
	return &UserProfile{
		UserID:       userID,
		SexID:        sexID,
		DNI:          dni,
		FirstName:    firstName,
		LastName:     lastName,
		BirthDate:    birthDate,
		ContactEmail: contactEmail,
		Verified:     false,
	}
}

// IsComplete reports whether name, DNI, birth date and verification are all
// populated. Downstream policy checks use this; it is never enforced at
// construction.
func (p *UserProfile) IsComplete() bool {
	return p.FirstName != "" &&
		p.LastName != "" &&
		p.DNI != "" &&
		!p.BirthDate.IsZero() &&
		p.Verified
}

// FullName concatenates first and last name with a single separating space.
func (p *UserProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Verify marks the profile as verified. Idempotent.
func (p *UserProfile) Verify() {
	p.Verified = true
}

// ChangeDNI replaces the document number. Uniqueness is re-checked by the
// service before persisting.
func (p *UserProfile) ChangeDNI(dni string) {
	p.DNI = dni
}

// SetPhone updates the contact phone. Pass nil to clear it.
func (p *UserProfile) SetPhone(phone *string) {
	p.Phone = phone
}

// SetAddressID links the profile to an address catalog entry.
func (p *UserProfile) SetAddressID(addressID *int64) {
	p.AddressID = addressID
}

// SetSocialLinkID links the profile to a social link record.
func (p *UserProfile) SetSocialLinkID(socialLinkID *int64) {
	p.SocialLinkID = socialLinkID
}

// AttachPhoto links the profile to a stored photo.
func (p *UserProfile) AttachPhoto(photoID uuid.UUID) {
	p.PhotoID = &photoID
}
