package app

import (
	"context"
	"fmt"
	"sync"

	profileHTTP "github.com/socioclub/membership/internal/profile/http"
	profileRepository "github.com/socioclub/membership/internal/profile/repository"
	profileUsecase "github.com/socioclub/membership/internal/profile/usecase"
)

// profileComponents groups the lazily-built profile wiring.
type profileComponents struct {
	profileRepoInit sync.Once
	photoRepoInit   sync.Once
	handlerInit     sync.Once

	profileRepo profileUsecase.ProfileRepository
	photoRepo   profileUsecase.PhotoRepository
	handler     *profileHTTP.ProfileHandler
}

// ProfileRepository returns the profile repository instance.
func (c *Container) ProfileRepository() (profileUsecase.ProfileRepository, error) {
	c.profile.profileRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["profileRepo"] = fmt.Errorf("failed to get database for profile repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.profile.profileRepo = profileRepository.NewMySQLProfileRepository(db)
		case "postgres":
			c.profile.profileRepo = profileRepository.NewPostgreSQLProfileRepository(db)
		default:
			c.initErrors["profileRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["profileRepo"]; exists {
		return nil, storedErr
	}
	return c.profile.profileRepo, nil
}

// PhotoRepository returns the profile photo repository instance.
func (c *Container) PhotoRepository() (profileUsecase.PhotoRepository, error) {
	c.profile.photoRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["photoRepo"] = fmt.Errorf("failed to get database for photo repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.profile.photoRepo = profileRepository.NewMySQLPhotoRepository(db)
		case "postgres":
			c.profile.photoRepo = profileRepository.NewPostgreSQLPhotoRepository(db)
		default:
			c.initErrors["photoRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["photoRepo"]; exists {
		return nil, storedErr
	}
	return c.profile.photoRepo, nil
}

// ProfileUseCase returns the profile use case instance, wrapped with business
// metrics recording.
func (c *Container) ProfileUseCase(ctx context.Context) (profileUsecase.UseCase, error) {
	c.profileUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to get tx manager for profile use case: %w", err)
			return
		}

		profileRepo, err := c.ProfileRepository()
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to get profile repository for profile use case: %w", err)
			return
		}

		photoRepo, err := c.PhotoRepository()
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to get photo repository for profile use case: %w", err)
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to get user repository for profile use case: %w", err)
			return
		}

		mediaStorage, err := c.MediaStorage(ctx)
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to get media storage for profile use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to get business metrics for profile use case: %w", err)
			return
		}

		useCase := profileUsecase.NewProfileUseCase(txManager, profileRepo, photoRepo, userRepo, mediaStorage)
		c.profileUseCase = profileUsecase.NewProfileUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["profileUseCase"]; exists {
		return nil, storedErr
	}
	return c.profileUseCase, nil
}

// ProfileHandler returns the profile HTTP handler.
func (c *Container) ProfileHandler(ctx context.Context) (*profileHTTP.ProfileHandler, error) {
	c.profile.handlerInit.Do(func() {
		useCase, err := c.ProfileUseCase(ctx)
		if err != nil {
			c.initErrors["profileHandler"] = fmt.Errorf("failed to get profile use case for profile handler: %w", err)
			return
		}
		c.profile.handler = profileHTTP.NewProfileHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["profileHandler"]; exists {
		return nil, storedErr
	}
	return c.profile.handler, nil
}
