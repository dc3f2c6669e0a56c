package user

import (
	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
)

// Create is the input of AddUser. Password is plaintext.
type Create struct {
	Name     string      `json:"name"      validate:"required,max=100"`
	FullName string      `json:"full_name" validate:"required,max=255"`
	Email    string      `json:"email"     validate:"required,email,max=255"`
	Password string      `json:"password"  validate:"required,max=128"`
	RoleID   *uuid.UUID  `json:"role_id"`
	GroupIDs []uuid.UUID `json:"group_ids"`
}

// Update is the input of UpdateUser. Nil fields are left untouched,
// an empty GroupIDs list removes the user from every group. ClearRole
// unassigns the role and cannot be combined with RoleID.
type Update struct {
	ID         uuid.UUID    `json:"id"          validate:"required"`
	Name       *string      `json:"name"        validate:"omitempty,min=1,max=100"`
	FullName   *string      `json:"full_name"   validate:"omitempty,min=1,max=255"`
	Email      *string      `json:"email"       validate:"omitempty,email,max=255"`
	Password   *string      `json:"password"    validate:"omitempty,min=1,max=128"`
	RoleID     *uuid.UUID   `json:"role_id"`
	ClearRole  bool         `json:"clear_role"  validate:"excluded_with=RoleID"`
	GroupIDs   *[]uuid.UUID `json:"group_ids"`
	IsActive   *bool        `json:"is_active"`
	IsVerified *bool        `json:"is_verified"`
}

// Public is the projection of a user shown to other users.
type Public struct {
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// ToPublic projects u. The password never leaves the service.
func ToPublic(u *models.User) Public {
	return Public{
		Name:       u.Name,
		FullName:   u.FullName,
		Email:      u.Email,
		IsVerified: u.IsVerified,
	}
}

// Detail is the projection returned to administrators.
type Detail struct {
	Public

	ID        uuid.UUID   `json:"id"`
	IsActive  bool        `json:"is_active"`
	IsDeleted bool        `json:"is_deleted"`
	RoleID    *uuid.UUID  `json:"role_id"`
	GroupIDs  []uuid.UUID `json:"group_ids"`
}

// ToDetail projects u for administrators.
func ToDetail(u *models.User) Detail {
	groupIDs := make([]uuid.UUID, 0, len(u.Groups))
	for i := range u.Groups {
		groupIDs = append(groupIDs, u.Groups[i].ID)
	}

	return Detail{
		Public:    ToPublic(u),
		ID:        u.ID,
		IsActive:  u.IsActive,
		IsDeleted: u.IsDeleted,
		RoleID:    u.RoleID,
		GroupIDs:  groupIDs,
	}
}
