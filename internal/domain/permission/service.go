// Package permission implements the permission operations. A permission name is
// the token scope it grants to users whose role holds it.
package permission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/query"
)

// Service implements the permission operations.
type Service struct {
	db        *gorm.DB
	store     *repository.PermissionRepository
	validator *Validator
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the service to the permission and role tables of db.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		store: repository.Permissions(db),
		now:   func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	s.validator = NewValidator(repository.Roles(db), s.now)

	return s
}

// AddPermission validates in and stores the new permission with its roles.
func (s *Service) AddPermission(ctx context.Context, in Create) (*models.Permission, error) {
	p, err := s.validator.ValidateCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, &p)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("permission", created.Name).Stringer("id", created.ID).Msg("permission created")

	return created, nil
}

// UpdatePermission applies the supplied fields of in to an existing permission.
// A deleted permission counts as missing.
func (s *Service) UpdatePermission(ctx context.Context, in Update) (*models.Permission, error) {
	existing, err := s.store.Get(ctx, in.ID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil || existing.IsDeleted {
		return nil, domain.NotFound(domain.ErrInvalidPermission, in.ID)
	}

	patch, err := s.validator.ValidateUpdate(ctx, in)
	if err != nil {
		return nil, err
	}

	merged := models.MergePermission(*existing, patch, s.now())

	updated, err := s.store.Update(ctx, &merged)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("permission", updated.Name).Stringer("id", updated.ID).Msg("permission updated")

	return updated, nil
}

// DeletePermission soft deletes the permission with the given id.
// It stops being granted as a scope at the next login.
func (s *Service) DeletePermission(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil {
		return nil, domain.NotFound(domain.ErrInvalidPermission, id)
	}

	deleted, err := s.store.Delete(ctx, existing)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("permission", deleted.Name).Stringer("id", deleted.ID).Msg("permission deleted")

	return deleted, nil
}

// GetPermission returns the permission with the given id, or nil.
func (s *Service) GetPermission(ctx context.Context, id uuid.UUID) (*models.Permission, error) {
	return s.store.Get(ctx, id) //nolint:wrapcheck
}

// GetPermissionByName returns the first permission with exactly this name, or nil.
func (s *Service) GetPermissionByName(ctx context.Context, name string) (*models.Permission, error) {
	return s.store.GetBy(ctx, query.Filter{"name": name}) //nolint:wrapcheck
}

// GetPermissions returns one page of permissions.
func (s *Service) GetPermissions(
	ctx context.Context, filter models.NamedFilter, sort *query.Sort, page query.Page,
) ([]models.Permission, error) {
	return s.store.GetMany(ctx, filter.Filter(), sort, page) //nolint:wrapcheck
}

// GetByRoleID returns the active permissions linked to the role, in creation order.
// An inactive or deleted role grants nothing.
func (s *Service) GetByRoleID(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error) {
	permissions := make([]models.Permission, 0)

	err := s.db.WithContext(ctx).
		Model(&models.Permission{}).
		Select("permissions.*").
		Joins("JOIN role_permission_link ON role_permission_link.permission_id = permissions.id").
		Joins("JOIN roles ON roles.id = role_permission_link.role_id").
		Where("role_permission_link.role_id = ?", roleID).
		Where("roles.is_active = ? AND roles.is_deleted = ?", true, false).
		Where("permissions.is_active = ? AND permissions.is_deleted = ?", true, false).
		Order("permissions.created_at ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions of role %s: %w", roleID, err)
	}

	return permissions, nil
}
