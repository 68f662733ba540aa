package app

import (
	"fmt"
	"sync"

	identityDomain "github.com/socioclub/membership/internal/identity/domain"
	identityHTTP "github.com/socioclub/membership/internal/identity/http"
	identityRepository "github.com/socioclub/membership/internal/identity/repository"
	identityService "github.com/socioclub/membership/internal/identity/service"
	identityUsecase "github.com/socioclub/membership/internal/identity/usecase"
)

// identityComponents groups the lazily-built identity wiring.
type identityComponents struct {
	userRepoInit sync.Once
	roleRepoInit sync.Once
	hasherInit   sync.Once
	handlerInit  sync.Once

	userRepo identityUsecase.UserRepository
	roleRepo identityUsecase.RoleRepository
	hasher   identityDomain.PasswordHasher
	handler  *identityHTTP.UserHandler
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (identityUsecase.UserRepository, error) {
	c.identity.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.identity.userRepo = identityRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.identity.userRepo = identityRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.identity.userRepo, nil
}

// RoleRepository returns the role repository instance.
func (c *Container) RoleRepository() (identityUsecase.RoleRepository, error) {
	c.identity.roleRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["roleRepo"] = fmt.Errorf("failed to get database for role repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.identity.roleRepo = identityRepository.NewMySQLRoleRepository(db)
		case "postgres":
			c.identity.roleRepo = identityRepository.NewPostgreSQLRoleRepository(db)
		default:
			c.initErrors["roleRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["roleRepo"]; exists {
		return nil, storedErr
	}
	return c.identity.roleRepo, nil
}

// PasswordHasher returns the password hashing strategy selected by the
// configuration.
func (c *Container) PasswordHasher() (identityDomain.PasswordHasher, error) {
	c.identity.hasherInit.Do(func() {
		switch c.config.PasswordHasher {
		case "bcrypt":
			c.identity.hasher = identityService.NewBcryptHasher()
		case "argon2id":
			hasher, err := identityService.NewArgon2Hasher()
			if err != nil {
				c.initErrors["hasher"] = fmt.Errorf("failed to create argon2id hasher: %w", err)
				return
			}
			c.identity.hasher = hasher
		default:
			c.initErrors["hasher"] = fmt.Errorf("unsupported password hasher: %s", c.config.PasswordHasher)
		}
	})
	if storedErr, exists := c.initErrors["hasher"]; exists {
		return nil, storedErr
	}
	return c.identity.hasher, nil
}

// UserUseCase returns the identity use case instance, wrapped with business
// metrics recording.
func (c *Container) UserUseCase() (identityUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get tx manager for user use case: %w", err)
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get user repository for user use case: %w", err)
			return
		}

		roleRepo, err := c.RoleRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get role repository for user use case: %w", err)
			return
		}

		profileRepo, err := c.ProfileRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get profile repository for user use case: %w", err)
			return
		}

		hasher, err := c.PasswordHasher()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get password hasher for user use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get business metrics for user use case: %w", err)
			return
		}

		useCase := identityUsecase.NewUserUseCase(txManager, userRepo, roleRepo, profileRepo, hasher)
		c.userUseCase = identityUsecase.NewUserUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// UserHandler returns the identity HTTP handler.
func (c *Container) UserHandler() (*identityHTTP.UserHandler, error) {
	c.identity.handlerInit.Do(func() {
		useCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["userHandler"] = fmt.Errorf("failed to get user use case for user handler: %w", err)
			return
		}
		c.identity.handler = identityHTTP.NewUserHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.identity.handler, nil
}
