package repository

import (
	"context"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsRepository stores news articles.
type NewsRepository struct{ conn }

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{conn{db}}
}

// List returns articles newest first, optionally only the published ones.
func (r *NewsRepository) List(ctx context.Context, publishedOnly bool, opts ListOptions) (Set[models.News], error) {
	q, err := r.with(ctx)
	if err != nil {
		return Set[models.News]{}, err
	}
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	return list[models.News](q, opts, "created_at DESC")
}

func (r *NewsRepository) Get(ctx context.Context, id uuid.UUID) (*models.News, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	return get[models.News](q, id)
}

func (r *NewsRepository) Create(ctx context.Context, n *models.News) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return database.Classify(q.Create(n).Error)
}

func (r *NewsRepository) Update(ctx context.Context, n *models.News) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	if _, err := get[models.News](q, n.ID); err != nil {
		return err
	}
	return database.Classify(q.Save(n).Error)
}

// SetPublished publishes or unpublishes an article.
func (r *NewsRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return updateColumn[models.News](q, id, "published", published)
}

func (r *NewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return remove[models.News](q, id)
}
