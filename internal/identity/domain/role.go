package domain

import (
	"time"

	"github.com/google/uuid"
)

// Known role names. Roles are reference data; the predicates below are
// name-based lookups against this closed set.
const (
	RoleNameAdmin     = "Admin"
	RoleNameModerator = "Moderador"
	RoleNameUser      = "Usuario"
)

// Role is an immutable reference entity for authorization.
type Role struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// IsAdmin reports whether this is the administrator role.
func (r *Role) IsAdmin() bool {
	return r.Name == RoleNameAdmin
}

// IsModerator reports whether this is the moderator role.
func (r *Role) IsModerator() bool {
	return r.Name == RoleNameModerator
}

// IsStandardUser reports whether this is the default member role.
func (r *Role) IsStandardUser() bool {
	return r.Name == RoleNameUser
}
