package group

import (
	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
)

// Create is the input of AddGroup.
type Create struct {
	Name        string      `json:"name"        validate:"required,max=100"`
	Location    string      `json:"location"    validate:"required,max=255"`
	Description *string     `json:"description" validate:"omitempty,max=255"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

// Update is the input of UpdateGroup. Nil fields are left untouched,
// an empty MemberIDs list removes every member.
type Update struct {
	ID          uuid.UUID    `json:"id"          validate:"required"`
	Name        *string      `json:"name"        validate:"omitempty,min=1,max=100"`
	Location    *string      `json:"location"    validate:"omitempty,min=1,max=255"`
	Description *string      `json:"description" validate:"omitempty,max=255"`
	MemberIDs   *[]uuid.UUID `json:"member_ids"`
	IsActive    *bool        `json:"is_active"`
}

// Public is the projection of a group shown to callers.
type Public struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
}

// ToPublic projects g.
func ToPublic(g *models.Group) Public {
	return Public{
		Name:        g.Name,
		Location:    g.Location,
		Description: g.Description,
	}
}

// Detail is the projection returned after a write.
type Detail struct {
	Public

	ID        uuid.UUID   `json:"id"`
	IsActive  bool        `json:"is_active"`
	IsDeleted bool        `json:"is_deleted"`
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// ToDetail projects g with its member ids.
func ToDetail(g *models.Group) Detail {
	memberIDs := make([]uuid.UUID, 0, len(g.Members))
	for i := range g.Members {
		memberIDs = append(memberIDs, g.Members[i].ID)
	}

	return Detail{
		Public:    ToPublic(g),
		ID:        g.ID,
		IsActive:  g.IsActive,
		IsDeleted: g.IsDeleted,
		MemberIDs: memberIDs,
	}
}
