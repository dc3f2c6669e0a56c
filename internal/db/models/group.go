package models

import "time"

// Group represents a named set of users at a location.
type Group struct {
	Base
	// Name is the display name of the group.
	Name string `gorm:"size:100;not null;index" json:"name"`
	// Location of the group.
	Location string `gorm:"size:255;not null" json:"location"`
	// Description provides a human-readable explanation of the group's purpose.
	Description *string `gorm:"size:255" json:"description"`
	// Members of the group.
	Members []User `gorm:"many2many:user_group_link;joinForeignKey:GroupID;joinReferences:UserID" json:"members,omitempty"`
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}

// NewGroup builds an active group.
func NewGroup(name, location string, description *string, members []User, now time.Time) Group {
	return Group{
		Base:        NewBase(now),
		Name:        name,
		Location:    location,
		Description: description,
		Members:     members,
	}
}

// GroupPatch carries the fields of a partial group update.
type GroupPatch struct {
	Name        *string
	Location    *string
	Description *string
	IsActive    *bool
	Members     *[]User
}

// MergeGroup applies the patch to a copy of existing and stamps it with now.
// A deleted group stays inactive.
func MergeGroup(existing Group, p GroupPatch, now time.Time) Group {
	g := existing

	if p.Name != nil {
		g.Name = *p.Name
	}

	if p.Location != nil {
		g.Location = *p.Location
	}

	if p.Description != nil {
		d := *p.Description
		g.Description = &d
	}

	if p.IsActive != nil && !g.IsDeleted {
		g.IsActive = *p.IsActive
	}

	if p.Members != nil {
		g.Members = *p.Members
	}

	g.Touch(now)

	return g
}
