package group

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/query"
)

// UserReader looks up users by id.
type UserReader interface {
	GetIn(ctx context.Context, ids []uuid.UUID, filter query.Filter) ([]models.User, error)
}

// Validator resolves the members of group inputs before anything is written.
type Validator struct {
	users UserReader
	now   func() time.Time
}

// NewValidator returns a Validator reading from users.
func NewValidator(users UserReader, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	return &Validator{users: users, now: now}
}

// ValidateCreate returns the group described by in with its members resolved.
func (v *Validator) ValidateCreate(ctx context.Context, in Create) (models.Group, error) {
	if err := domain.Validate(in); err != nil {
		return models.Group{}, err //nolint:wrapcheck
	}

	members, err := v.resolveMembers(ctx, in.MemberIDs)
	if err != nil {
		return models.Group{}, err
	}

	return models.NewGroup(in.Name, in.Location, in.Description, members, v.now()), nil
}

// ValidateUpdate returns the patch described by in with its members resolved.
func (v *Validator) ValidateUpdate(ctx context.Context, in Update) (models.GroupPatch, error) {
	if err := domain.Validate(in); err != nil {
		return models.GroupPatch{}, err //nolint:wrapcheck
	}

	patch := models.GroupPatch{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		IsActive:    in.IsActive,
	}

	if in.MemberIDs != nil {
		members, err := v.resolveMembers(ctx, *in.MemberIDs)
		if err != nil {
			return models.GroupPatch{}, err
		}

		patch.Members = &members
	}

	return patch, nil
}

// resolveMembers accepts only active, not deleted users.
func (v *Validator) resolveMembers(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	active, err := v.users.GetIn(ctx, ids, models.ActiveOnly())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	members, missing := domain.Resolve(ids, active, func(u *models.User) uuid.UUID { return u.ID })
	if missing != nil {
		return nil, domain.InvalidUserError(*missing)
	}

	return members, nil
}
