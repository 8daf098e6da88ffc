// Package handler serves the back-office JSON API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/hub"
	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"
	"gamestudio/website/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LiveTopic is the hub topic carrying newly tracked page views.
const LiveTopic = "page_views"

// GameStore is the game data the admin API manages.
type GameStore interface {
	List(ctx context.Context, opts repository.ListOptions) (repository.Set[models.Game], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewsStore is the news data the admin API manages.
type NewsStore interface {
	List(ctx context.Context, publishedOnly bool, opts repository.ListOptions) (repository.Set[models.News], error)
	Get(ctx context.Context, id uuid.UUID) (*models.News, error)
	Create(ctx context.Context, n *models.News) error
	Update(ctx context.Context, n *models.News) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CareerStore is the careers data the admin API manages.
type CareerStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Career, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Career, error)
	Create(ctx context.Context, c *models.Career) error
	Update(ctx context.Context, c *models.Career) error
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, dir repository.Direction) error
}

// ProfileStore is the user data the admin API manages.
type ProfileStore interface {
	List(ctx context.Context, opts repository.ListOptions) (repository.Set[models.Profile], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error
}

// Authenticator checks back-office credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error)
}

// AnalyticsStore reads the aggregated analytics.
type AnalyticsStore interface {
	Summary(ctx context.Context, days int) (*repository.Summary, error)
	RecentPageViews(ctx context.Context, limit int) ([]models.PageView, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(profileID uuid.UUID) (string, error)
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Games         GameStore
	News          NewsStore
	Careers       CareerStore
	Profiles      ProfileStore
	Admins        Authenticator
	Analytics     AnalyticsStore
	Tokens        TokenIssuer
	TokenTTL      time.Duration
	Live          *hub.Hub[models.PageView]
	SecureCookies bool
	Logger        *zap.Logger
}

// Handler implements the JSON API endpoints.
type Handler struct {
	Deps
	log *zap.Logger
}

// New creates a Handler.
func New(d Deps) *Handler {
	if d.Live == nil {
		d.Live = hub.New[models.PageView]()
	}
	return &Handler{Deps: d, log: logger.OrNop(d.Logger).Named("api")}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse represents a plain confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"Game deleted"`
}

// fail writes the JSON error for err. notFound is the message used for
// database.ErrNotFound.
func (h *Handler) fail(c *gin.Context, err error, notFound, internal string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, database.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Record already exists"})
	case errors.Is(err, database.ErrUnavailable):
		h.log.Warn("backend unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Backend unavailable"})
	default:
		h.log.Error(internal, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internal})
	}
}

// paramID parses the :id path parameter, writing a 400 when it is not a UUID.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
