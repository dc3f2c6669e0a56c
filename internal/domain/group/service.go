// Package group implements the group business operations on top of the generic repository.
package group

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

// Store is the persistence the service needs.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Group, error)
	GetBy(ctx context.Context, filter query.Filter) (*models.Group, error)
	GetMany(ctx context.Context, filter query.Filter, sort *query.Sort, page query.Page) ([]models.Group, error)
	Count(ctx context.Context, filter query.Filter) (int64, error)
	Create(ctx context.Context, g *models.Group) (*models.Group, error)
	Update(ctx context.Context, g *models.Group) (*models.Group, error)
	Delete(ctx context.Context, g *models.Group) (*models.Group, error)
}

// Service implements the group operations.
type Service struct {
	store     Store
	validator *Validator
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the service to the group and user tables of db.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		store: repository.Groups(db),
		now:   func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	s.validator = NewValidator(repository.Users(db), s.now)

	return s
}

// AddGroup validates in and stores the new group with its members.
func (s *Service) AddGroup(ctx context.Context, in Create) (*models.Group, error) {
	g, err := s.validator.ValidateCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, &g)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("group", created.Name).Stringer("id", created.ID).Int("members", len(created.Members)).
		Msg("group created")

	return created, nil
}

// UpdateGroup applies the supplied fields of in to an existing group.
// A deleted group counts as missing.
func (s *Service) UpdateGroup(ctx context.Context, in Update) (*models.Group, error) {
	existing, err := s.store.Get(ctx, in.ID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil || existing.IsDeleted {
		return nil, domain.NotFound(domain.ErrInvalidGroup, in.ID)
	}

	patch, err := s.validator.ValidateUpdate(ctx, in)
	if err != nil {
		return nil, err
	}

	merged := models.MergeGroup(*existing, patch, s.now())

	updated, err := s.store.Update(ctx, &merged)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("group", updated.Name).Stringer("id", updated.ID).Msg("group updated")

	return updated, nil
}

// DeleteGroup soft deletes the group with the given id. Memberships are kept.
func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil {
		return nil, domain.NotFound(domain.ErrInvalidGroup, id)
	}

	deleted, err := s.store.Delete(ctx, existing)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("group", deleted.Name).Stringer("id", deleted.ID).Msg("group deleted")

	return deleted, nil
}

// GetGroup returns the group with the given id, or nil.
func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	return s.store.Get(ctx, id) //nolint:wrapcheck
}

// GetGroupByName returns the first group with exactly this name, or nil.
func (s *Service) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	return s.store.GetBy(ctx, query.Filter{"name": name}) //nolint:wrapcheck
}

// GetGroups returns one page of groups.
func (s *Service) GetGroups(
	ctx context.Context, filter models.GroupFilter, sort *query.Sort, page query.Page,
) ([]models.Group, error) {
	return s.store.GetMany(ctx, filter.Filter(), sort, page) //nolint:wrapcheck
}

// CountGroups returns how many groups match filter.
func (s *Service) CountGroups(ctx context.Context, filter models.GroupFilter) (int64, error) {
	return s.store.Count(ctx, filter.Filter()) //nolint:wrapcheck
}

// GetMembers returns the active members of the group with the given id.
func (s *Service) GetMembers(ctx context.Context, id uuid.UUID) ([]models.User, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if g == nil {
		return nil, domain.NotFound(domain.ErrInvalidGroup, id)
	}

	members := make([]models.User, 0, len(g.Members))
	for i := range g.Members {
		if g.Members[i].Usable() {
			members = append(members, g.Members[i])
		}
	}

	return members, nil
}
