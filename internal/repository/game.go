package repository

import (
	"context"
	"strings"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameRepository stores the showcase titles.
type GameRepository struct{ conn }

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{conn{db}}
}

// List returns games newest first. Query filters on title.
func (r *GameRepository) List(ctx context.Context, opts ListOptions) (Set[models.Game], error) {
	q, err := r.with(ctx)
	if err != nil {
		return Set[models.Game]{}, err
	}
	if s := strings.TrimSpace(opts.Query); s != "" {
		q = q.Where("title ILIKE ?", "%"+s+"%")
	}
	return list[models.Game](q, opts, "created_at DESC")
}

// ListAvailable returns the games shown publicly, newest first.
func (r *GameRepository) ListAvailable(ctx context.Context) ([]models.Game, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	var games []models.Game
	if err := q.Where("is_available = ?", true).Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, database.Classify(err)
	}
	return games, nil
}

func (r *GameRepository) Get(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	return get[models.Game](q, id)
}

// GetByRoute finds a game by its public route, e.g. "/games/zeus-clockwork-tyrant".
func (r *GameRepository) GetByRoute(ctx context.Context, route string) (*models.Game, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	var game models.Game
	if err := q.Where("route = ?", route).First(&game).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &game, nil
}

func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return database.Classify(q.Create(game).Error)
}

// Update saves every column of an existing game.
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	if _, err := get[models.Game](q, game.ID); err != nil {
		return err
	}
	return database.Classify(q.Save(game).Error)
}

// SetAvailability shows or hides a game without deleting it.
func (r *GameRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return updateColumn[models.Game](q, id, "is_available", available)
}

func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return remove[models.Game](q, id)
}
