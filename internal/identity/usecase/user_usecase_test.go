package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/socioclub/membership/internal/database"
	apperrors "github.com/socioclub/membership/internal/errors"
	"github.com/socioclub/membership/internal/identity/domain"
	profileDomain "github.com/socioclub/membership/internal/profile/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

func (m *MockTxManager) Begin(ctx context.Context) (context.Context, *database.Tx, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return ctx, nil, args.Error(2)
	}
	return args.Get(0).(context.Context), args.Get(1).(*database.Tx), args.Error(2)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) GetDefault(ctx context.Context) (*domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *profileDomain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	args := m.Called(ctx, dni)
	return args.Bool(0), args.Error(1)
}

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (fakeHasher) Verify(plaintext, hash string) bool    { return hash == "hashed:"+plaintext }

func mustEmail(t *testing.T, value string) domain.Email {
	t.Helper()

	email, err := domain.NewEmail(value)
	require.NoError(t, err)
	return email
}

type usecaseMocks struct {
	txManager   *MockTxManager
	userRepo    *MockUserRepository
	roleRepo    *MockRoleRepository
	profileRepo *MockProfileRepository
}

func newUseCase(t *testing.T) (UseCase, usecaseMocks) {
	t.Helper()

	m := usecaseMocks{
		txManager:   new(MockTxManager),
		userRepo:    new(MockUserRepository),
		roleRepo:    new(MockRoleRepository),
		profileRepo: new(MockProfileRepository),
	}
	uc := NewUserUseCase(m.txManager, m.userRepo, m.roleRepo, m.profileRepo, fakeHasher{})
	return uc, m
}

func validRegisterInput() RegisterUserInput {
	return RegisterUserInput{
		Email:     "Ana@Example.com",
		Password:  "Password1",
		SexID:     1,
		DNI:       "30123456",
		FirstName: "Ana",
		LastName:  "García",
		BirthDate: time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserUseCase_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, m := newUseCase(t)
		role := &domain.Role{ID: uuid.Must(uuid.NewV7()), Name: domain.RoleNameUser}

		m.userRepo.On("ExistsByEmail", ctx, mustEmail(t, "ana@example.com")).Return(false, nil)
		m.profileRepo.On("ExistsByDNI", ctx, "30123456").Return(false, nil)
		m.roleRepo.On("GetDefault", ctx).Return(role, nil)
		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		m.profileRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

		output, err := uc.RegisterUser(ctx, validRegisterInput())
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", output.User.Email.String())
		assert.Equal(t, role.ID, output.User.RoleID)
		assert.False(t, output.User.EmailVerified)
		assert.NotEqual(t, uuid.Nil, output.User.ID)
		assert.Equal(t, output.User.ID, output.Profile.UserID)
		assert.Equal(t, "30123456", output.Profile.DNI)
		assert.True(t, output.User.Password.Verify("Password1", fakeHasher{}))

		m.userRepo.AssertExpectations(t)
		m.profileRepo.AssertExpectations(t)
		m.roleRepo.AssertExpectations(t)
		m.txManager.AssertExpectations(t)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		uc, _ := newUseCase(t)

		input := validRegisterInput()
		input.Email = "not-an-email"
		input.Password = "short"
		input.DNI = "abc"

		_, err := uc.RegisterUser(ctx, input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Underage", func(t *testing.T) {
		uc, _ := newUseCase(t)

		input := validRegisterInput()
		input.BirthDate = time.Now().AddDate(-16, 0, 0)

		_, err := uc.RegisterUser(ctx, input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		uc, _ := newUseCase(t)

		input := validRegisterInput()
		input.Password = "alllowercase"

		_, err := uc.RegisterUser(ctx, input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		uc, m := newUseCase(t)

		m.userRepo.On("ExistsByEmail", ctx, mustEmail(t, "ana@example.com")).Return(true, nil)

		_, err := uc.RegisterUser(ctx, validRegisterInput())
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		assert.Equal(t, apperrors.CodeDuplicateUser, apperrors.CodeOf(err))
	})

	t.Run("DuplicateDNI", func(t *testing.T) {
		uc, m := newUseCase(t)

		m.userRepo.On("ExistsByEmail", ctx, mustEmail(t, "ana@example.com")).Return(false, nil)
		m.profileRepo.On("ExistsByDNI", ctx, "30123456").Return(true, nil)

		_, err := uc.RegisterUser(ctx, validRegisterInput())
		assert.ErrorIs(t, err, profileDomain.ErrDNIAlreadyExists)
	})

	t.Run("ProfileCreateFailsInsideTx", func(t *testing.T) {
		uc, m := newUseCase(t)
		role := &domain.Role{ID: uuid.Must(uuid.NewV7()), Name: domain.RoleNameUser}

		m.userRepo.On("ExistsByEmail", ctx, mustEmail(t, "ana@example.com")).Return(false, nil)
		m.profileRepo.On("ExistsByDNI", ctx, "30123456").Return(false, nil)
		m.roleRepo.On("GetDefault", ctx).Return(role, nil)
		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		m.profileRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserProfile")).
			Return(profileDomain.ErrProfileAlreadyExists)

		_, err := uc.RegisterUser(ctx, validRegisterInput())
		assert.ErrorIs(t, err, profileDomain.ErrProfileAlreadyExists)
	})
}

func testLoginUser(t *testing.T) *domain.User {
	t.Helper()

	email, err := domain.NewEmail("ana@example.com")
	require.NoError(t, err)
	password, err := domain.NewPassword("Password1", fakeHasher{})
	require.NoError(t, err)

	user := domain.NewUser(email, password, uuid.Must(uuid.NewV7()))
	user.ID = uuid.Must(uuid.NewV7())
	return user
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, m := newUseCase(t)
		user := testLoginUser(t)

		m.userRepo.On("GetByEmail", ctx, mustEmail(t, "ana@example.com")).Return(user, nil)
		m.userRepo.On("Update", ctx, user).Return(nil)

		got, err := uc.Login(ctx, LoginInput{Email: "Ana@Example.com", Password: "Password1"})
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		assert.WithinDuration(t, time.Now().UTC(), *got.LastLoginAt, time.Minute)

		m.userRepo.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		uc, m := newUseCase(t)

		m.userRepo.On("GetByEmail", ctx, mustEmail(t, "ghost@example.com")).Return(nil, domain.ErrUserNotFound)

		_, err := uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "Password1"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Equal(t, apperrors.CodeEntityNotFound, apperrors.CodeOf(err))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		uc, m := newUseCase(t)
		user := testLoginUser(t)

		m.userRepo.On("GetByEmail", ctx, mustEmail(t, "ana@example.com")).Return(user, nil)

		// Wrong password is indistinguishable from an unknown email.
		_, err := uc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "WrongPass1"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		m.userRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("MalformedEmail", func(t *testing.T) {
		uc, _ := newUseCase(t)

		_, err := uc.Login(ctx, LoginInput{Email: "not-an-email", Password: "Password1"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("MissingFields", func(t *testing.T) {
		uc, _ := newUseCase(t)

		_, err := uc.Login(ctx, LoginInput{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestUserUseCase_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, m := newUseCase(t)
		user := testLoginUser(t)

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		m.userRepo.On("Update", ctx, user).Return(nil)

		got, err := uc.VerifyEmail(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.EmailVerified)

		m.userRepo.AssertExpectations(t)
	})

	t.Run("AlreadyVerified", func(t *testing.T) {
		uc, m := newUseCase(t)
		user := testLoginUser(t)
		user.VerifyEmail()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		got, err := uc.VerifyEmail(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.EmailVerified)
		m.userRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		uc, m := newUseCase(t)
		id := uuid.Must(uuid.NewV7())

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("GetByID", ctx, id).Return(nil, domain.ErrUserNotFound)

		_, err := uc.VerifyEmail(ctx, id)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserUseCase_GetUser(t *testing.T) {
	ctx := context.Background()
	uc, m := newUseCase(t)
	user := testLoginUser(t)

	m.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	got, err := uc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserUseCase_ListUsers(t *testing.T) {
	ctx := context.Background()
	uc, m := newUseCase(t)
	users := []*domain.User{testLoginUser(t), testLoginUser(t)}

	m.userRepo.On("List", ctx, 0, 50).Return(users, nil)

	got, err := uc.ListUsers(ctx, 0, 50)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUserUseCase_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	uc, m := newUseCase(t)
	user := testLoginUser(t)

	m.userRepo.On("GetByEmail", ctx, mustEmail(t, "ana@example.com")).Return(user, nil)

	got, err := uc.GetUserByEmail(ctx, "  ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}
