package models

import "time"

// Role represents a role in the role-based access control (RBAC) system.
// The names of its permissions become the token scopes of users holding the role.
type Role struct {
	Base
	// Name is the name of the role (e.g., "Admin", "Engineer").
	Name string `gorm:"size:100;not null;index" json:"name"`
	// Description provides a human-readable description of the role's purpose.
	Description *string `gorm:"size:255" json:"description"`
	// Permissions granted by the role.
	Permissions []Permission `gorm:"many2many:role_permission_link;joinForeignKey:RoleID;joinReferences:PermissionID" json:"permissions,omitempty"` //nolint:lll
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// NewRole builds an active role.
func NewRole(name string, description *string, permissions []Permission, now time.Time) Role {
	return Role{
		Base:        NewBase(now),
		Name:        name,
		Description: description,
		Permissions: permissions,
	}
}

// RolePatch carries the fields of a partial role update.
type RolePatch struct {
	Name        *string
	Description *string
	IsActive    *bool
	Permissions *[]Permission
}

// MergeRole applies the patch to a copy of existing and stamps it with now.
// A deleted role stays inactive.
func MergeRole(existing Role, p RolePatch, now time.Time) Role {
	r := existing

	if p.Name != nil {
		r.Name = *p.Name
	}

	if p.Description != nil {
		d := *p.Description
		r.Description = &d
	}

	if p.IsActive != nil && !r.IsDeleted {
		r.IsActive = *p.IsActive
	}

	if p.Permissions != nil {
		r.Permissions = *p.Permissions
	}

	r.Touch(now)

	return r
}
