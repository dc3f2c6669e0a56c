// Package user implements the user business operations on top of the generic repository.
package user

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

// Hasher turns a plaintext password into a digest.
type Hasher interface {
	Hash(password string) (string, error)
}

// Store is the persistence the service needs.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetBy(ctx context.Context, filter query.Filter) (*models.User, error)
	GetMany(ctx context.Context, filter query.Filter, sort *query.Sort, page query.Page) ([]models.User, error)
	Count(ctx context.Context, filter query.Filter) (int64, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
	Delete(ctx context.Context, u *models.User) (*models.User, error)
}

// Service implements the user operations.
type Service struct {
	store     Store
	validator *Validator
	hasher    Hasher
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the service to the user, role and group tables of db.
func NewService(db *gorm.DB, hasher Hasher, opts ...Option) *Service {
	s := &Service{
		store:  repository.Users(db),
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	s.validator = NewValidator(repository.Roles(db), repository.Groups(db), s.now)

	return s
}

// AddUser validates in, hashes the password and stores the new user.
func (s *Service) AddUser(ctx context.Context, in Create) (*models.User, error) {
	u, err := s.validator.ValidateCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	if u.Password, err = s.hasher.Hash(u.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.Create(ctx, &u)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("user", created.Name).Stringer("id", created.ID).Msg("user created")

	return created, nil
}

// UpdateUser applies the supplied fields of in to an existing user.
// A deleted user counts as missing.
func (s *Service) UpdateUser(ctx context.Context, in Update) (*models.User, error) {
	existing, err := s.store.Get(ctx, in.ID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil || existing.IsDeleted {
		return nil, domain.NotFound(domain.ErrInvalidUser, in.ID)
	}

	patch, err := s.validator.ValidateUpdate(ctx, in)
	if err != nil {
		return nil, err
	}

	if patch.Password != nil {
		digest, errHash := s.hasher.Hash(*patch.Password)
		if errHash != nil {
			return nil, fmt.Errorf("hash password: %w", errHash)
		}

		patch.Password = &digest
	}

	merged := models.MergeUser(*existing, patch, s.now())

	updated, err := s.store.Update(ctx, &merged)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("user", updated.Name).Stringer("id", updated.ID).Msg("user updated")

	return updated, nil
}

// DeleteUser soft deletes the user with the given id.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if existing == nil {
		return nil, domain.NotFound(domain.ErrInvalidUser, id)
	}

	deleted, err := s.store.Delete(ctx, existing)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().Str("user", deleted.Name).Stringer("id", deleted.ID).Msg("user deleted")

	return deleted, nil
}

// GetUser returns the user with the given id, or nil.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.store.Get(ctx, id) //nolint:wrapcheck
}

// GetUserByName returns the first user with exactly this name, or nil.
func (s *Service) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	return s.store.GetBy(ctx, query.Filter{"name": name}) //nolint:wrapcheck
}

// GetUserRoleID returns the role of the named user, nil when the user or its role is absent.
func (s *Service) GetUserRoleID(ctx context.Context, name string) (*uuid.UUID, error) {
	u, err := s.GetUserByName(ctx, name)
	if err != nil || u == nil {
		return nil, err
	}

	return u.RoleID, nil
}

// GetUsers returns one page of users.
func (s *Service) GetUsers(ctx context.Context, filter models.UserFilter, sort *query.Sort, page query.Page) ([]models.User, error) {
	return s.store.GetMany(ctx, filter.Filter(), sort, page) //nolint:wrapcheck
}

// CountUsers returns how many users match filter.
func (s *Service) CountUsers(ctx context.Context, filter models.UserFilter) (int64, error) {
	return s.store.Count(ctx, filter.Filter()) //nolint:wrapcheck
}
