package models

import "time"

// Permission represents a specific permission in the authorization system.
// Its name is used verbatim as a token scope (e.g., "users", "me").
type Permission struct {
	Base
	// Name is the scope name.
	Name string `gorm:"size:100;not null;index" json:"name"`
	// Description provides a human-readable explanation of what this permission grants.
	Description *string `gorm:"size:255" json:"description"`
	// Roles granting this permission.
	Roles []Role `gorm:"many2many:role_permission_link;joinForeignKey:PermissionID;joinReferences:RoleID" json:"roles,omitempty"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission builds an active permission.
func NewPermission(name string, description *string, roles []Role, now time.Time) Permission {
	return Permission{
		Base:        NewBase(now),
		Name:        name,
		Description: description,
		Roles:       roles,
	}
}

// PermissionPatch carries the fields of a partial permission update.
type PermissionPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
	Roles       *[]Role
}

// MergePermission applies the patch to a copy of existing and stamps it with now.
// A deleted permission stays inactive.
func MergePermission(existing Permission, p PermissionPatch, now time.Time) Permission {
	m := existing

	if p.Name != nil {
		m.Name = *p.Name
	}

	if p.Description != nil {
		d := *p.Description
		m.Description = &d
	}

	if p.IsActive != nil && !m.IsDeleted {
		m.IsActive = *p.IsActive
	}

	if p.Roles != nil {
		m.Roles = *p.Roles
	}

	m.Touch(now)

	return m
}
