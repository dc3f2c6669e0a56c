package role

import (
	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
)

// Create is the input of AddRole.
type Create struct {
	Name          string      `json:"name"           validate:"required,max=100"`
	Description   *string     `json:"description"    validate:"omitempty,max=255"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// Update is the input of UpdateRole. Nil fields are left untouched.
type Update struct {
	ID            uuid.UUID    `json:"id"             validate:"required"`
	Name          *string      `json:"name"           validate:"omitempty,min=1,max=100"`
	Description   *string      `json:"description"    validate:"omitempty,max=255"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids"`
	IsActive      *bool        `json:"is_active"`
}

// Public is the projection of a role, with the names of its permissions.
type Public struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
	Permissions []string  `json:"permissions"`
}

// ToPublic projects r.
func ToPublic(r *models.Role) Public {
	names := make([]string, 0, len(r.Permissions))
	for i := range r.Permissions {
		names = append(names, r.Permissions[i].Name)
	}

	return Public{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		IsDeleted:   r.IsDeleted,
		Permissions: names,
	}
}
