package models

import "github.com/google/uuid"

// UserGroupLink is the join row between users and groups.
type UserGroupLink struct {
	// UserID is the member.
	UserID uuid.UUID `gorm:"type:char(36);primaryKey;column:user_id"`
	// GroupID is the group.
	GroupID uuid.UUID `gorm:"type:char(36);primaryKey;column:group_id"`
}

// TableName specifies the database table name for the UserGroupLink model.
func (UserGroupLink) TableName() string {
	return "user_group_link"
}
