// Package domain holds what the entity services share: the validation error
// taxonomy, input checking and reference resolution.
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidRole is returned when a role reference does not resolve to a usable role.
	ErrInvalidRole = errors.New("role not found")

	// ErrInvalidGroup is returned when a group reference does not resolve to an active group.
	ErrInvalidGroup = errors.New("group not found")

	// ErrInvalidUser is returned when a user reference does not resolve to an active user.
	ErrInvalidUser = errors.New("user not found")

	// ErrInvalidPermission is returned when a permission reference does not resolve to an active permission.
	ErrInvalidPermission = errors.New("permission not found")

	// ErrInvalidInput is returned when an input payload fails its field rules.
	ErrInvalidInput = errors.New("invalid input")
)

// ReferenceError names the reference that failed to resolve.
// It matches its kind (ErrInvalidRole, ...) with errors.Is.
type ReferenceError struct {
	Kind  error
	Field string
	ID    uuid.UUID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return e.Kind
}

// InvalidRoleError reports an unusable role_id.
func InvalidRoleError(id uuid.UUID) error {
	return &ReferenceError{Kind: ErrInvalidRole, Field: "role_id", ID: id}
}

// InvalidGroupError reports an unusable group_id.
func InvalidGroupError(id uuid.UUID) error {
	return &ReferenceError{Kind: ErrInvalidGroup, Field: "group_id", ID: id}
}

// InvalidUserError reports an unusable user id, as a member or as an update target.
func InvalidUserError(id uuid.UUID) error {
	return &ReferenceError{Kind: ErrInvalidUser, Field: "member_id", ID: id}
}

// InvalidPermissionError reports an unusable permission_id.
func InvalidPermissionError(id uuid.UUID) error {
	return &ReferenceError{Kind: ErrInvalidPermission, Field: "permission_id", ID: id}
}

// NotFound wraps kind for a missing update or delete target.
func NotFound(kind error, id uuid.UUID) error {
	return &ReferenceError{Kind: kind, Field: "id", ID: id}
}
