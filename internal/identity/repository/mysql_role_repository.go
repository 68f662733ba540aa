package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/socioclub/membership/internal/database"
	"github.com/socioclub/membership/internal/identity/domain"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// MySQLRoleRepository handles role persistence for MySQL
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQLRoleRepository
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		db: db,
	}
}

// GetByID retrieves a role by ID
func (r *MySQLRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at FROM roles WHERE id = ?`

	return scanRole(querier.QueryRowContext(ctx, query, id.String()))
}

// GetByName retrieves a role by name
func (r *MySQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at FROM roles WHERE name = ?`

	return scanRole(querier.QueryRowContext(ctx, query, name))
}

// GetDefault retrieves the role assigned to new registrations.
func (r *MySQLRoleRepository) GetDefault(ctx context.Context) (*domain.Role, error) {
	return r.GetByName(ctx, domain.RoleNameUser)
}

// Create inserts a role, ignoring duplicates by name.
func (r *MySQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO roles (id, name, created_at) VALUES (?, ?, NOW())`

	if _, err := querier.ExecContext(ctx, query, role.ID.String(), role.Name); err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}
