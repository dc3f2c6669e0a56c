// Package models holds the gorm entities of the user management system and the
// merge functions applied to them on partial updates.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the identity, audit and soft delete fields shared by all entities.
// A deleted entity is always inactive and carries a deletion time.
type Base struct {
	// ID is the unique identifier of the entity.
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	// CreatedAt is set once on construction.
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	// DeletedAt is set when the entity is soft deleted.
	DeletedAt *time.Time `json:"deleted_at"`
	// IsActive is false for disabled and deleted entities.
	IsActive bool `gorm:"not null;index" json:"is_active"`
	// IsDeleted marks a soft deleted entity.
	IsDeleted bool `gorm:"not null" json:"is_deleted"`
}

// NewBase returns an active entity base with a fresh id. Ids are time ordered
// UUIDv7 values, so ordering by id follows construction order.
func NewBase(now time.Time) Base {
	now = now.UTC()

	return Base{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
}

// GetID returns the primary key.
func (b *Base) GetID() uuid.UUID {
	return b.ID
}

// Touch refreshes the update timestamp.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now.UTC()
}

// SoftDelete deactivates the entity and records the deletion time.
func (b *Base) SoftDelete(now time.Time) {
	now = now.UTC()

	b.IsActive = false
	b.IsDeleted = true
	b.DeletedAt = &now
	b.UpdatedAt = now
}

// Usable reports whether the entity may be referenced by other entities.
func (b *Base) Usable() bool {
	return b.IsActive && !b.IsDeleted
}
