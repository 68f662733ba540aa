package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	"github.com/socioclub/membership/internal/identity/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// PostgreSQLRoleRepository handles role persistence for PostgreSQL. Roles are
// reference data seeded by the seed-roles command.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQLRoleRepository
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{
		db: db,
	}
}

// GetByID retrieves a role by ID
func (r *PostgreSQLRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at FROM roles WHERE id = $1`

	return scanRole(querier.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a role by name
func (r *PostgreSQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at FROM roles WHERE name = $1`

	return scanRole(querier.QueryRowContext(ctx, query, name))
}

// GetDefault retrieves the role assigned to new registrations.
func (r *PostgreSQLRoleRepository) GetDefault(ctx context.Context) (*domain.Role, error) {
	return r.GetByName(ctx, domain.RoleNameUser)
}

// Create inserts a role. Used by the seed command; inserting an existing name
// is a no-op.
func (r *PostgreSQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, created_at) VALUES ($1, $2, NOW())
			  ON CONFLICT (name) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, role.ID, role.Name); err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

func scanRole(row rowScanner) (*domain.Role, error) {
	var role domain.Role

	err := row.Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}

	return &role, nil
}
