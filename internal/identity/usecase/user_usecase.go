package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	apperrors "github.com/socioclub/membership/internal/errors"
	"github.com/socioclub/membership/internal/identity/domain"
	profileDomain "github.com/socioclub/membership/internal/profile/domain"
	appValidation "github.com/socioclub/membership/internal/validation"
)

// RegisterUserInput contains the input data for member registration. A
// registration always carries the profile data: the account and its profile
// are created together.
type RegisterUserInput struct {
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	SexID     int64     `json:"sex_id"`
	DNI       string    `json:"dni"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"birth_date"`
	Phone     *string   `json:"phone"`
}

// RegisterUserOutput carries the created aggregate.
type RegisterUserOutput struct {
	User    *domain.User
	Profile *profileDomain.UserProfile
}

// LoginInput contains the credentials presented for authentication
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUseCase handles identity business logic
type UserUseCase struct {
	txManager   database.TxManager
	userRepo    UserRepository
	roleRepo    RoleRepository
	profileRepo ProfileRepository
	hasher      domain.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	roleRepo RoleRepository,
	profileRepo ProfileRepository,
	hasher domain.PasswordHasher,
) UseCase {
	return &UserUseCase{
		txManager:   txManager,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		profileRepo: profileRepo,
		hasher:      hasher,
	}
}

// validateRegisterUserInput validates the registration input before any
// entity is constructed. All field errors are aggregated into a single
// invalid-input error.
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordStrength{
				MinLength:     8,
				MaxLength:     100,
				RequireUpper:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&input.SexID,
			validation.Required.Error("sex_id is required"),
			validation.Min(int64(1)).Error("sex_id must be positive"),
		),
		validation.Field(&input.DNI,
			validation.Required.Error("dni is required"),
			appValidation.DNI,
		),
		validation.Field(&input.FirstName,
			validation.Required.Error("first_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("first_name must be between 1 and 100 characters"),
		),
		validation.Field(&input.LastName,
			validation.Required.Error("last_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("last_name must be between 1 and 100 characters"),
		),
		validation.Field(&input.BirthDate,
			validation.Required.Error("birth_date is required"),
			appValidation.BirthDate{MinAge: 18, MaxAge: 120},
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new member: it validates the whole aggregate,
// pre-checks uniqueness, and creates the user together with its linked
// profile in a single transaction. Concurrent registrations racing past the
// pre-checks are still rejected by the store's unique constraints, which the
// repositories map to the same duplicate errors.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	password, err := domain.NewPassword(input.Password, uc.hasher)
	if err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	exists, err = uc.profileRepo.ExistsByDNI(ctx, input.DNI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, profileDomain.ErrDNIAlreadyExists
	}

	role, err := uc.roleRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(email, password, role.ID)
	user.ID = uuid.Must(uuid.NewV7())

	profile := profileDomain.NewUserProfile(
		user.ID, input.SexID, input.DNI,
		input.FirstName, input.LastName, input.BirthDate, email,
	)
	profile.ID = uuid.Must(uuid.NewV7())
	profile.SetPhone(input.Phone)

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return uc.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterUserOutput{User: user, Profile: profile}, nil
}

// Login authenticates the credentials and records the login time. Unknown
// email and wrong password produce the same error so callers cannot probe
// which accounts exist.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email, validation.Required.Error("email is required")),
		validation.Field(&input.Password, validation.Required.Error("password is required")),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !user.Password.Verify(input.Password, uc.hasher) {
		return nil, domain.ErrUserNotFound
	}

	user.RegisterLogin(time.Now().UTC())
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail marks the user's email as verified. Verifying an already
// verified user is a no-op.
func (uc *UserUseCase) VerifyEmail(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user *domain.User

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.EmailVerified {
			return nil
		}
		user.VerifyEmail()
		return uc.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by email
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	normalized, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.GetByEmail(ctx, normalized)
}

// ListUsers retrieves a page of users ordered by creation time
func (uc *UserUseCase) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}
