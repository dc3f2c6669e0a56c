package permission

import (
	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
)

// Create is the input of AddPermission. The name is the scope it grants.
type Create struct {
	Name        string      `json:"name"        validate:"required,max=100"`
	Description *string     `json:"description" validate:"omitempty,max=255"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
}

// Update is the input of UpdatePermission. Nil fields are left untouched.
type Update struct {
	ID          uuid.UUID    `json:"id"          validate:"required"`
	Name        *string      `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string      `json:"description" validate:"omitempty,max=255"`
	RoleIDs     *[]uuid.UUID `json:"role_ids"`
	IsActive    *bool        `json:"is_active"`
}

// Public is the projection of a permission.
type Public struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
}

// ToPublic projects p.
func ToPublic(p *models.Permission) Public {
	return Public{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		IsDeleted:   p.IsDeleted,
	}
}
