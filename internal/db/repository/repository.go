// Package repository provides one generic data access component for all entities.
// Each entity type is plugged in with its own filter and sort allow-lists, the
// relations to preload on reads and the many-to-many relations to write.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/umsproject/ums/internal/query"
)

const defaultOrder = "created_at ASC"

// Entity is implemented by every model through models.Base.
type Entity interface {
	GetID() uuid.UUID
	SoftDelete(now time.Time)
}

// Relation describes a many-to-many relation written together with its owner.
// Value returns the current slice and its length.
type Relation[T any] struct {
	Name  string
	Value func(*T) (any, int)
}

// Config specialises a Repository for one entity type.
type Config[T any] struct {
	// Name is used in logs and error messages.
	Name string
	// Filters is the allow-list of filterable keys.
	Filters query.Columns
	// Sorts is the allow-list of sortable keys.
	Sorts query.Columns
	// Preloads are the associations loaded with every read.
	Preloads []string
	// Relations are replaced on every write. Each must also be preloaded,
	// otherwise an update would clear it.
	Relations []Relation[T]
	// Now overrides the clock used for soft deletes.
	Now func() time.Time
}

// Repository implements reads and writes for entity T.
type Repository[T any, P interface {
	*T
	Entity
}] struct {
	db  *gorm.DB
	cfg Config[T]
}

// New returns a repository for T.
func New[T any, P interface {
	*T
	Entity
}](db *gorm.DB, cfg Config[T]) *Repository[T, P] {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Repository[T, P]{db: db, cfg: cfg}
}

// Get returns the entity with the given id, or nil when there is none.
func (r *Repository[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	log.Debug().Str("entity", r.cfg.Name).Stringer("id", id).Msg("get by id")

	var items []T

	err := r.read(ctx).Where("id = ?", id).Limit(1).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.cfg.Name, id, err)
	}

	if len(items) == 0 {
		return nil, nil //nolint:nilnil
	}

	return &items[0], nil
}

// GetBy returns the first entity matching a single filter field, or nil.
// A field outside the allow-list matches nothing.
func (r *Repository[T, P]) GetBy(ctx context.Context, filter query.Filter) (*T, error) {
	populated := filter.Populated()

	switch {
	case len(populated) == 0:
		return nil, ErrEmptyFilter
	case len(populated) > 1:
		return nil, ErrTooManyFilters
	}

	predicates := r.cfg.Filters.Predicates(populated)
	if len(predicates) == 0 {
		return nil, nil //nolint:nilnil
	}

	log.Debug().Str("entity", r.cfg.Name).Str("column", predicates[0].Column).Msg("get by filter")

	var items []T

	err := where(r.read(ctx), predicates).Order(defaultOrder).Order("id ASC").Limit(1).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("get %s by %s: %w", r.cfg.Name, predicates[0].Column, err)
	}

	if len(items) == 0 {
		return nil, nil //nolint:nilnil
	}

	return &items[0], nil
}

// GetMany returns one page of the entities matching every allow-listed filter field.
// Without a sort the rows come in creation order. Ties are broken by id. The
// result is never nil.
func (r *Repository[T, P]) GetMany(ctx context.Context, filter query.Filter, sort *query.Sort, page query.Page) ([]T, error) {
	order, err := r.cfg.Sorts.OrderBy(sort)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if order == "" {
		order = defaultOrder
	}

	page = page.Normalize()
	predicates := r.cfg.Filters.Predicates(filter)

	log.Debug().Str("entity", r.cfg.Name).Int("filters", len(predicates)).Str("order", order).
		Int("limit", page.Limit).Int("page", page.Number).Msg("get many")

	items := make([]T, 0)

	err = where(r.read(ctx), predicates).
		Order(order).
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("get many %s: %w", r.cfg.Name, err)
	}

	return items, nil
}

// Count returns how many entities match the filter.
func (r *Repository[T, P]) Count(ctx context.Context, filter query.Filter) (int64, error) {
	var n int64

	err := where(r.db.WithContext(ctx).Model(new(T)), r.cfg.Filters.Predicates(filter)).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.cfg.Name, err)
	}

	return n, nil
}

// GetIn returns the entities whose id is in ids and that match the filter.
func (r *Repository[T, P]) GetIn(ctx context.Context, ids []uuid.UUID, filter query.Filter) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	err := where(r.read(ctx), r.cfg.Filters.Predicates(filter)).
		Where("id IN ?", ids).
		Order(defaultOrder).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("get %s in ids: %w", r.cfg.Name, err)
	}

	return items, nil
}

// Create inserts a fully built entity together with its relations.
func (r *Repository[T, P]) Create(ctx context.Context, e P) (P, error) {
	log.Debug().Str("entity", r.cfg.Name).Stringer("id", e.GetID()).Msg("create")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return err //nolint:wrapcheck
		}

		return r.writeRelations(tx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.cfg.Name, err)
	}

	return e, nil
}

// Update writes every column of an existing entity and replaces its relations.
func (r *Repository[T, P]) Update(ctx context.Context, e P) (P, error) {
	log.Debug().Str("entity", r.cfg.Name).Stringer("id", e.GetID()).Msg("update")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateColumns(tx, e); err != nil {
			return err
		}

		return r.writeRelations(tx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.cfg.Name, err)
	}

	return e, nil
}

// Delete soft deletes the entity and persists it.
func (r *Repository[T, P]) Delete(ctx context.Context, e P) (P, error) {
	log.Debug().Str("entity", r.cfg.Name).Stringer("id", e.GetID()).Msg("soft delete")

	e.SoftDelete(r.cfg.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.updateColumns(tx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", r.cfg.Name, err)
	}

	return e, nil
}

// Upsert inserts the entity or overwrites every column of the row with the same id.
func (r *Repository[T, P]) Upsert(ctx context.Context, e P) (P, error) {
	log.Debug().Str("entity", r.cfg.Name).Stringer("id", e.GetID()).Msg("upsert")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(e).Error
		if err != nil {
			return err //nolint:wrapcheck
		}

		return r.writeRelations(tx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert %s: %w", r.cfg.Name, err)
	}

	return e, nil
}

func (r *Repository[T, P]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	for _, p := range r.cfg.Preloads {
		q = q.Preload(p)
	}

	return q
}

func (r *Repository[T, P]) updateColumns(tx *gorm.DB, e P) error {
	var n int64

	if err := tx.Model(new(T)).Where("id = ?", e.GetID()).Count(&n).Error; err != nil {
		return err //nolint:wrapcheck
	}

	if n == 0 {
		return ErrNotFound
	}

	return tx.Model(e).Omit(clause.Associations).Select("*").Updates(e).Error //nolint:wrapcheck
}

func (r *Repository[T, P]) writeRelations(tx *gorm.DB, e P) error {
	for _, rel := range r.cfg.Relations {
		value, n := rel.Value((*T)(e))

		var err error
		if n == 0 {
			err = tx.Model(e).Association(rel.Name).Clear()
		} else {
			err = tx.Model(e).Association(rel.Name).Replace(value)
		}

		if err != nil {
			return fmt.Errorf("relation %s: %w", rel.Name, err)
		}
	}

	return nil
}

func where(q *gorm.DB, predicates []query.Predicate) *gorm.DB {
	for _, p := range predicates {
		q = q.Where(clause.Eq{Column: clause.Column{Name: p.Column}, Value: p.Value})
	}

	return q
}

// IsNotFound reports whether err is ErrNotFound or gorm's record not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
