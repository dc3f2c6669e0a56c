package user

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
	Get(ctx context.Context, id uuid.UUID) (*models.Role, error)
}

// GroupReader looks up groups by id.
type GroupReader interface {
	GetIn(ctx context.Context, ids []uuid.UUID, filter query.Filter) ([]models.Group, error)
}

// Validator resolves the references of user inputs before anything is written.
type Validator struct {
	roles  RoleReader
	groups GroupReader
	now    func() time.Time
}

// NewValidator returns a Validator reading from roles and groups.
func NewValidator(roles RoleReader, groups GroupReader, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	return &Validator{roles: roles, groups: groups, now: now}
}

// ValidateCreate returns the user described by in with its role checked and its
// groups resolved. The password is still plaintext.
func (v *Validator) ValidateCreate(ctx context.Context, in Create) (models.User, error) {
	if err := domain.Validate(in); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	if err := v.checkRole(ctx, in.RoleID); err != nil {
		return models.User{}, err
	}

	groups, err := v.resolveGroups(ctx, in.GroupIDs)
	if err != nil {
		return models.User{}, err
	}

	return models.NewUser(in.Name, in.FullName, in.Email, in.Password, in.RoleID, groups, v.now()), nil
}

// ValidateUpdate returns the patch described by in with its references resolved.
// The password is still plaintext.
func (v *Validator) ValidateUpdate(ctx context.Context, in Update) (models.UserPatch, error) {
	if err := domain.Validate(in); err != nil {
		return models.UserPatch{}, err //nolint:wrapcheck
	}

	if err := v.checkRole(ctx, in.RoleID); err != nil {
		return models.UserPatch{}, err
	}

	patch := models.UserPatch{
		Name:       in.Name,
		FullName:   in.FullName,
		Email:      in.Email,
		Password:   in.Password,
		IsActive:   in.IsActive,
		IsVerified: in.IsVerified,
		RoleID:     in.RoleID,
		ClearRole:  in.ClearRole,
	}

	if in.GroupIDs != nil {
		groups, err := v.resolveGroups(ctx, *in.GroupIDs)
		if err != nil {
			return models.UserPatch{}, err
		}

		patch.Groups = &groups
	}

	return patch, nil
}

// checkRole accepts only roles that exist and are active.
func (v *Validator) checkRole(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	role, err := v.roles.Get(ctx, *id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if role == nil || !role.Usable() {
		return domain.InvalidRoleError(*id)
	}

	return nil
}

func (v *Validator) resolveGroups(ctx context.Context, ids []uuid.UUID) ([]models.Group, error) {
	if len(ids) == 0 {
		return []models.Group{}, nil
	}

	active, err := v.groups.GetIn(ctx, ids, models.ActiveOnly())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	groups, missing := domain.Resolve(ids, active, func(g *models.Group) uuid.UUID { return g.ID })
	if missing != nil {
		return nil, domain.InvalidGroupError(*missing)
	}

	return groups, nil
}
