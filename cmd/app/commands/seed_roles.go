package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/app"
	"github.com/socioclub/membership/internal/config"
	identityDomain "github.com/socioclub/membership/internal/identity/domain"
	identityRepository "github.com/socioclub/membership/internal/identity/repository"
)

// roleCreator is the repository surface the seed command needs.
type roleCreator interface {
	Create(ctx context.Context, role *identityDomain.Role) error
}

// RunSeedRoles inserts the built-in roles when they are missing. Existing
// roles are left untouched, so the command is safe to run repeatedly.
func RunSeedRoles(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	db, err := container.DB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var repo roleCreator
	switch cfg.DBDriver {
	case "mysql":
		repo = identityRepository.NewMySQLRoleRepository(db)
	case "postgres":
		repo = identityRepository.NewPostgreSQLRoleRepository(db)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	names := []string{
		identityDomain.RoleNameAdmin,
		identityDomain.RoleNameModerator,
		identityDomain.RoleNameUser,
	}

	for _, name := range names {
		role := &identityDomain.Role{
			ID:   uuid.Must(uuid.NewV7()),
			Name: name,
		}
		if err := repo.Create(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
		logger.Info("role ensured", slog.String("name", name))
	}

	logger.Info("roles seeded successfully")
	return nil
}
