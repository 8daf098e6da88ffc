// Package repository reads and writes the hosted backend tables. Every
// repository accepts a nil handle, in which case each call returns
// database.ErrUnavailable.
package repository

import (
	"context"
	"errors"

	"gamestudio/website/internal/database"

	"gorm.io/gorm"
)

// Pagination limits shared by the admin list endpoints.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ErrAtEdge is returned by CareerRepository.Move when there is no neighbour
// in the requested direction.
var ErrAtEdge = errors.New("already at the edge of the list")

// ListOptions filters and pages a list query. A zero Page or Limit returns
// every row.
type ListOptions struct {
	Page  int
	Limit int
	Query string
}

// Normalize clamps paging values the way the admin API expects them.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

func (o ListOptions) paged() bool { return o.Page > 0 && o.Limit > 0 }

func (o ListOptions) offset() int { return (o.Page - 1) * o.Limit }

// Set is one page of rows and the total row count.
type Set[T any] struct {
	Items []T
	Total int64
}

// Repositories bundles every repository over one handle.
type Repositories struct {
	Games      *GameRepository
	News       *NewsRepository
	Careers    *CareerRepository
	Profiles   *ProfileRepository
	AdminUsers *AdminUserRepository
	Analytics  *AnalyticsRepository
}

// New builds every repository over db, which may be nil.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Games:      NewGameRepository(db),
		News:       NewNewsRepository(db),
		Careers:    NewCareerRepository(db),
		Profiles:   NewProfileRepository(db),
		AdminUsers: NewAdminUserRepository(db),
		Analytics:  NewAnalyticsRepository(db),
	}
}

type conn struct {
	db *gorm.DB
}

func (c conn) with(ctx context.Context) (*gorm.DB, error) {
	if c.db == nil {
		return nil, database.ErrUnavailable
	}
	return c.db.WithContext(ctx), nil
}

// list runs a counted, optionally paged Find over q.
func list[T any](q *gorm.DB, opts ListOptions, order string) (Set[T], error) {
	var set Set[T]
	if err := q.Session(&gorm.Session{}).Model(new(T)).Count(&set.Total).Error; err != nil {
		return Set[T]{}, database.Classify(err)
	}
	q = q.Order(order)
	if opts.paged() {
		q = q.Offset(opts.offset()).Limit(opts.Limit)
	}
	if err := q.Find(&set.Items).Error; err != nil {
		return Set[T]{}, database.Classify(err)
	}
	return set, nil
}

// get loads one row by primary key.
func get[T any](q *gorm.DB, id any) (*T, error) {
	row := new(T)
	if err := q.First(row, "id = ?", id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return row, nil
}

// remove deletes one row by primary key; zero affected rows is ErrNotFound.
func remove[T any](q *gorm.DB, id any) error {
	res := q.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// updateColumn sets one column on a row; zero affected rows is ErrNotFound.
func updateColumn[T any](q *gorm.DB, id any, column string, value any) error {
	res := q.Model(new(T)).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
