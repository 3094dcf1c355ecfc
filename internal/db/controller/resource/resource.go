// Package resource implements one CRUD contract over any gorm model.
//
// A model opts in by implementing Record. Behaviour that differs between
// entities (soft delete, search columns, pagination, ordering) is described
// by a Policy rather than by code.
package resource

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MediBoard/MediBoard/internal/db/dberr"
)

const (
	// DefaultLimit is the page size when none is given.
	DefaultLimit = 20
	// MaxLimit caps the page size.
	MaxLimit = 100
	// MaxPage caps the page number so the row offset fits a 32 bit integer.
	MaxPage = math.MaxInt32 / MaxLimit

	idQueryPattern     = "id = ?"
	activeQueryPattern = "is_active = ?"
)

type (
	// Record is implemented by pointer-to-model types.
	Record[T any] interface {
		*T
		// Key returns the primary key value.
		Key() any
		// Retain copies the fields a write must not change from prev.
		// prev is nil on create; the record then resets its identity.
		Retain(prev *T)
	}

	// Sortable records can be renumbered by Reorder.
	Sortable interface {
		SetSortOrder(n int)
	}

	// Policy describes how a store treats its entity.
	Policy struct {
		// Name is used in error messages, e.g. "Doctor not found".
		Name string
		// SoftDelete flips is_active instead of removing the row.
		SoftDelete bool
		// SearchColumns are matched case-insensitively by Query.Search.
		SearchColumns []string
		// CategoryColumn is matched exactly by Query.Category.
		CategoryColumn string
		// Order is the ORDER BY clause for lists.
		Order string
		// Paginated lists honour Query.Page and Query.Limit.
		Paginated bool
		// DuplicateMessage replaces the default conflict message.
		DuplicateMessage string
	}

	// Query narrows a list.
	Query struct {
		Search          string
		Category        string
		Page            int
		Limit           int
		IncludeInactive bool
		// Scope adds entity specific conditions.
		Scope func(*gorm.DB) *gorm.DB
	}

	// Page is the list envelope of paginated entities.
	Page[T any] struct {
		Items []T   `json:"items"`
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	}

	// Store is the CRUD contract for one entity.
	Store[T any, PT Record[T]] struct {
		db     *gorm.DB
		policy Policy
	}
)

// New creates a store for T.
func New[T any, PT Record[T]](db *gorm.DB, policy Policy) *Store[T, PT] {
	return &Store[T, PT]{db: db, policy: policy}
}

// Policy returns the store policy.
func (s *Store[T, PT]) Policy() Policy { return s.policy }

// DB returns a session bound to ctx for entity specific queries.
func (s *Store[T, PT]) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// List returns the records matching q, and the total when the policy paginates.
func (s *Store[T, PT]) List(ctx context.Context, q Query) (Page[T], error) {
	if s.db == nil {
		return Page[T]{}, ErrDBNil
	}

	tx := s.db.WithContext(ctx).Model(new(T))

	if s.policy.SoftDelete && !q.IncludeInactive {
		tx = tx.Where(activeQueryPattern, true)
	}

	if search := strings.TrimSpace(q.Search); search != "" && len(s.policy.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		cond := s.db.Session(&gorm.Session{NewDB: true})

		for i, col := range s.policy.SearchColumns {
			if i == 0 {
				cond = cond.Where("LOWER("+col+") LIKE ?", pattern)
			} else {
				cond = cond.Or("LOWER("+col+") LIKE ?", pattern)
			}
		}

		tx = tx.Where(cond)
	}

	if q.Category != "" && s.policy.CategoryColumn != "" {
		tx = tx.Where(s.policy.CategoryColumn+" = ?", q.Category)
	}

	if q.Scope != nil {
		tx = q.Scope(tx)
	}

	tx = tx.Session(&gorm.Session{})
	page := Page[T]{Items: []T{}}

	if s.policy.Paginated {
		page.Page, page.Limit = normalizePage(q.Page, q.Limit)

		if err := tx.Count(&page.Total).Error; err != nil {
			return Page[T]{}, err
		}

		tx = tx.Offset((page.Page - 1) * page.Limit).Limit(page.Limit)
	}

	if s.policy.Order != "" {
		tx = tx.Order(s.policy.Order)
	}

	if err := tx.Find(&page.Items).Error; err != nil {
		return Page[T]{}, err
	}

	if !s.policy.Paginated {
		page.Total = int64(len(page.Items))
	}

	return page, nil
}

func normalizePage(page, limit int) (int, int) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return page, limit
}

// Get returns the record with the given id, active or not.
func (s *Store[T, PT]) Get(ctx context.Context, id any) (*T, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	return s.get(s.db.WithContext(ctx), id)
}

func (s *Store[T, PT]) get(tx *gorm.DB, id any) (*T, error) {
	rec := new(T)
	if err := tx.First(rec, idQueryPattern, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}

		return nil, err
	}

	return rec, nil
}

// Create inserts rec and returns the stored row.
func (s *Store[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	PT(rec).Retain(nil)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return nil, s.classify(err)
	}

	return s.Get(ctx, PT(rec).Key())
}

// Update overwrites every field of the record with the given id.
func (s *Store[T, PT]) Update(ctx context.Context, id any, rec *T) (*T, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev, err := s.get(tx, id)
		if err != nil {
			return err
		}

		PT(rec).Retain(prev)

		return tx.Omit(clause.Associations).Save(rec).Error
	})
	if err != nil {
		return nil, s.classify(err)
	}

	return s.Get(ctx, id)
}

// Delete removes the record, or marks it inactive under a soft delete policy.
func (s *Store[T, PT]) Delete(ctx context.Context, id any) error {
	if s.db == nil {
		return ErrDBNil
	}

	if s.policy.SoftDelete {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := s.get(tx, id); err != nil {
				return err
			}

			return tx.Model(new(T)).Where(idQueryPattern, id).Update("is_active", false).Error
		})
	}

	result := s.db.WithContext(ctx).Delete(new(T), idQueryPattern, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFound()
	}

	return nil
}

// Reorder assigns sort_order by position in ids in one transaction.
// An unknown id rolls back every change.
func (s *Store[T, PT]) Reorder(ctx context.Context, ids []any) error {
	if s.db == nil {
		return ErrDBNil
	}

	if _, ok := any(PT(new(T))).(Sortable); !ok {
		return ErrNotSortable
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			rec, err := s.get(tx, id)
			if err != nil {
				return err
			}

			any(rec).(Sortable).SetSortOrder(i)

			if err := tx.Model(rec).Select("sort_order").UpdateColumns(rec).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CreateMany inserts recs in one transaction. With replace, the current rows
// are removed first (or deactivated under a soft delete policy).
func (s *Store[T, PT]) CreateMany(ctx context.Context, recs []T, replace bool) ([]T, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replace {
			var err error
			if s.policy.SoftDelete {
				err = tx.Model(new(T)).Where(activeQueryPattern, true).Update("is_active", false).Error
			} else {
				err = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error
			}

			if err != nil {
				return err
			}
		}

		for i := range recs {
			PT(&recs[i]).Retain(nil)

			if err := tx.Omit(clause.Associations).Create(&recs[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.classify(err)
	}

	return recs, nil
}

func (s *Store[T, PT]) notFound() error {
	return &EntityError{Entity: s.policy.Name, Err: ErrNotFound}
}

func (s *Store[T, PT]) classify(err error) error {
	var entityErr *EntityError
	if errors.As(err, &entityErr) {
		return err
	}

	if dberr.IsDuplicate(err) {
		return &EntityError{Entity: s.policy.Name, Message: s.policy.DuplicateMessage, Err: ErrDuplicate}
	}

	return err
}
