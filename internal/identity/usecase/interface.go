// Package usecase implements the identity business logic: registration,
// authentication and email verification.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/identity/domain"
	profileDomain "github.com/socioclub/membership/internal/profile/domain"
)

// UserRepository defines the user persistence operations the use case needs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}

// RoleRepository defines the role persistence operations the use case needs.
type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetDefault(ctx context.Context) (*domain.Role, error)
}

// ProfileRepository defines the profile operations registration needs to
// create the linked profile atomically with the user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *profileDomain.UserProfile) error
	ExistsByDNI(ctx context.Context, dni string) (bool, error)
}

// UseCase defines the interface for identity business logic operations.
type UseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error)
	Login(ctx context.Context, input LoginInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error)
}
