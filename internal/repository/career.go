package repository

import (
	"context"
	"errors"
	"fmt"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Direction moves a career within the hand-maintained ordering.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ErrInvalidDirection is returned for anything but Up or Down.
var ErrInvalidDirection = errors.New("direction must be up or down")

// ParseDirection validates a direction from user input.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// CareerRepository stores open positions.
type CareerRepository struct{ conn }

func NewCareerRepository(db *gorm.DB) *CareerRepository {
	return &CareerRepository{conn{db}}
}

const careerOrder = "sort_order ASC, created_at ASC"

// List returns positions in display order, optionally only active ones.
func (r *CareerRepository) List(ctx context.Context, activeOnly bool) ([]models.Career, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var careers []models.Career
	if err := q.Order(careerOrder).Find(&careers).Error; err != nil {
		return nil, database.Classify(err)
	}
	return careers, nil
}

func (r *CareerRepository) Get(ctx context.Context, id uuid.UUID) (*models.Career, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	return get[models.Career](q, id)
}

// Create appends the career to the end of the ordering unless it carries one.
func (r *CareerRepository) Create(ctx context.Context, c *models.Career) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	if c.SortOrder == 0 {
		var last struct{ Max int }
		if err := q.Model(&models.Career{}).Select("COALESCE(MAX(sort_order), 0) AS max").Scan(&last).Error; err != nil {
			return database.Classify(err)
		}
		c.SortOrder = last.Max + 1
	}
	return database.Classify(q.Create(c).Error)
}

func (r *CareerRepository) Update(ctx context.Context, c *models.Career) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	if _, err := get[models.Career](q, c.ID); err != nil {
		return err
	}
	return database.Classify(q.Save(c).Error)
}

func (r *CareerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return remove[models.Career](q, id)
}

// Move swaps the sort order of a career with its neighbour in dir. Both rows
// are locked and updated in one transaction.
func (r *CareerRepository) Move(ctx context.Context, id uuid.UUID, dir Direction) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}

	err = q.Transaction(func(tx *gorm.DB) error {
		var current models.Career
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", id).Error; err != nil {
			return err
		}

		neighbour := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		switch dir {
		case Up:
			neighbour = neighbour.Where("sort_order < ?", current.SortOrder).Order("sort_order DESC")
		case Down:
			neighbour = neighbour.Where("sort_order > ?", current.SortOrder).Order("sort_order ASC")
		default:
			return ErrInvalidDirection
		}

		var other models.Career
		if err := neighbour.First(&other).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAtEdge
			}
			return err
		}

		if err := tx.Model(&current).Update("sort_order", other.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&other).Update("sort_order", current.SortOrder).Error
	})
	return database.Classify(err)
}
