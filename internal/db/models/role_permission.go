package models

import "github.com/google/uuid"

// RolePermissionLink is the join row between roles and permissions.
type RolePermissionLink struct {
	// RoleID is the role granting the permission.
	RoleID uuid.UUID `gorm:"type:char(36);primaryKey;column:role_id"`
	// PermissionID is the granted permission.
	PermissionID uuid.UUID `gorm:"type:char(36);primaryKey;column:permission_id"`
}

// TableName specifies the database table name for the RolePermissionLink model.
func (RolePermissionLink) TableName() string {
	return "role_permission_link"
}
