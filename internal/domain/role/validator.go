package role

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/query"
)

// PermissionReader looks up permissions by id.
type PermissionReader interface {
	GetIn(ctx context.Context, ids []uuid.UUID, filter query.Filter) ([]models.Permission, error)
}

// Validator resolves the permissions of role inputs before anything is written.
type Validator struct {
	permissions PermissionReader
	now         func() time.Time
}

// NewValidator returns a Validator reading from permissions.
func NewValidator(permissions PermissionReader, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	return &Validator{permissions: permissions, now: now}
}

// ValidateCreate returns the role described by in with its permissions resolved.
func (v *Validator) ValidateCreate(ctx context.Context, in Create) (models.Role, error) {
	if err := domain.Validate(in); err != nil {
		return models.Role{}, err //nolint:wrapcheck
	}

	permissions, err := v.resolvePermissions(ctx, in.PermissionIDs)
	if err != nil {
		return models.Role{}, err
	}

	return models.NewRole(in.Name, in.Description, permissions, v.now()), nil
}

// ValidateUpdate returns the patch described by in with its permissions resolved.
func (v *Validator) ValidateUpdate(ctx context.Context, in Update) (models.RolePatch, error) {
	if err := domain.Validate(in); err != nil {
		return models.RolePatch{}, err //nolint:wrapcheck
	}

	patch := models.RolePatch{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    in.IsActive,
	}

	if in.PermissionIDs != nil {
		permissions, err := v.resolvePermissions(ctx, *in.PermissionIDs)
		if err != nil {
			return models.RolePatch{}, err
		}

		patch.Permissions = &permissions
	}

	return patch, nil
}

func (v *Validator) resolvePermissions(ctx context.Context, ids []uuid.UUID) ([]models.Permission, error) {
	if len(ids) == 0 {
		return []models.Permission{}, nil
	}

	active, err := v.permissions.GetIn(ctx, ids, models.ActiveOnly())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	permissions, missing := domain.Resolve(ids, active, func(p *models.Permission) uuid.UUID { return p.ID })
	if missing != nil {
		return nil, domain.InvalidPermissionError(*missing)
	}

	return permissions, nil
}
