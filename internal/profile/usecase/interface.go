// Package usecase implements the profile business logic: profile creation,
// updates and photo management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/socioclub/membership/internal/identity/domain"
	"github.com/socioclub/membership/internal/profile/domain"
)

// ProfileRepository defines the profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	Update(ctx context.Context, profile *domain.UserProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	ExistsByDNI(ctx context.Context, dni string) (bool, error)
}

// PhotoRepository defines the photo record persistence operations.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProfilePhoto) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfilePhoto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserGetter answers whether the owning user exists.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.User, error)
}

// MediaStorage reads and writes photo bytes in the blob store.
type MediaStorage interface {
	Save(ctx context.Context, ownerID uuid.UUID, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// UseCase defines the interface for profile business logic operations.
type UseCase interface {
	CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.UserProfile, error)
	AttachPhoto(ctx context.Context, id uuid.UUID, input AttachPhotoInput) (*domain.UserProfile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
}
