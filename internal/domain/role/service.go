// Package role implements the role operations. A role bundles the permissions
// that become the token scopes of its users.
package role

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/query"
)

// Service implements the role operations.
type Service struct {
	store     *repository.RoleRepository
	validator *Validator
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the service to the role and permission tables of db.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		store: repository.Roles(db),
		now:   func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	s.validator = NewValidator(repository.Permissions(db), s.now)

	return s
}

// AddRole validates in and stores the new role with its permissions.
func (s *Service) AddRole(ctx context.Context, in Create) (*models.Role, error) {
	r, err := s.validator.ValidateCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, &r)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("role", created.Name).Stringer("id", created.ID).Msg("role created")

	return created, nil
}

// UpdateRole applies the supplied fields of in to an existing role.
// A deleted role counts as missing.
func (s *Service) UpdateRole(ctx context.Context, in Update) (*models.Role, error) {
	existing, err := s.store.Get(ctx, in.ID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil || existing.IsDeleted {
		return nil, domain.NotFound(domain.ErrInvalidRole, in.ID)
	}

	patch, err := s.validator.ValidateUpdate(ctx, in)
	if err != nil {
		return nil, err
	}

	merged := models.MergeRole(*existing, patch, s.now())

	updated, err := s.store.Update(ctx, &merged)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("role", updated.Name).Stringer("id", updated.ID).Msg("role updated")

	return updated, nil
}

// DeleteRole soft deletes the role with the given id. Users keep the reference
// but their tokens carry no scopes from it.
func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil {
		return nil, domain.NotFound(domain.ErrInvalidRole, id)
	}

	deleted, err := s.store.Delete(ctx, existing)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("role", deleted.Name).Stringer("id", deleted.ID).Msg("role deleted")

	return deleted, nil
}

// GetRole returns the role with the given id, or nil.
func (s *Service) GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	return s.store.Get(ctx, id) //nolint:wrapcheck
}

// GetRoleByName returns the first role with exactly this name, or nil.
func (s *Service) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return s.store.GetBy(ctx, query.Filter{"name": name}) //nolint:wrapcheck
}

// GetRoles returns one page of roles.
func (s *Service) GetRoles(
	ctx context.Context, filter models.NamedFilter, sort *query.Sort, page query.Page,
) ([]models.Role, error) {
	return s.store.GetMany(ctx, filter.Filter(), sort, page) //nolint:wrapcheck
}
