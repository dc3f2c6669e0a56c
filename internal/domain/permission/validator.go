package permission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/query"
)

// RoleReader looks up roles by id.
type RoleReader interface {
	GetIn(ctx context.Context, ids []uuid.UUID, filter query.Filter) ([]models.Role, error)
}

// Validator resolves the roles of permission inputs before anything is written.
type Validator struct {
	roles RoleReader
	now   func() time.Time
}

// NewValidator returns a Validator reading from roles.
func NewValidator(roles RoleReader, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	return &Validator{roles: roles, now: now}
}

// ValidateCreate returns the permission described by in with its roles resolved.
func (v *Validator) ValidateCreate(ctx context.Context, in Create) (models.Permission, error) {
	if err := domain.Validate(in); err != nil {
		return models.Permission{}, err //nolint:wrapcheck
	}

	roles, err := v.resolveRoles(ctx, in.RoleIDs)
	if err != nil {
		return models.Permission{}, err
	}

	return models.NewPermission(in.Name, in.Description, roles, v.now()), nil
}

// ValidateUpdate returns the patch described by in with its roles resolved.
func (v *Validator) ValidateUpdate(ctx context.Context, in Update) (models.PermissionPatch, error) {
	if err := domain.Validate(in); err != nil {
		return models.PermissionPatch{}, err //nolint:wrapcheck
	}

	patch := models.PermissionPatch{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    in.IsActive,
	}

	if in.RoleIDs != nil {
		roles, err := v.resolveRoles(ctx, *in.RoleIDs)
		if err != nil {
			return models.PermissionPatch{}, err
		}

		patch.Roles = &roles
	}

	return patch, nil
}

func (v *Validator) resolveRoles(ctx context.Context, ids []uuid.UUID) ([]models.Role, error) {
	if len(ids) == 0 {
		return []models.Role{}, nil
	}

	active, err := v.roles.GetIn(ctx, ids, models.ActiveOnly())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	roles, missing := domain.Resolve(ids, active, func(r *models.Role) uuid.UUID { return r.ID })
	if missing != nil {
		return nil, domain.InvalidRoleError(*missing)
	}

	return roles, nil
}
