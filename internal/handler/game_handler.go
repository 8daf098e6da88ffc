package handler

import (
	"net/http"
	"strings"
	"time"

	"gamestudio/website/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Title            string     `json:"title" binding:"required" example:"Zeus: Clockwork Tyrant"`
	Description      string     `json:"description"`
	MediaURL         string     `json:"media_url"`
	Route            string     `json:"route" example:"/games/zeus-clockwork-tyrant"`
	RTP              string     `json:"rtp" example:"96.2%"`
	Volatility       string     `json:"volatility" example:"High"`
	HitFrequency     string     `json:"hit_frequency"`
	MaxWin           string     `json:"max_win"`
	FreeSpinsTrigger string     `json:"free_spins_trigger"`
	Reels            string     `json:"reels" example:"5x4"`
	MinBet           float64    `json:"min_bet" binding:"gte=0"`
	MaxBet           float64    `json:"max_bet" binding:"gtefield=MinBet"`
	ReleaseDate      *time.Time `json:"release_date"`
	EarlyAccessDate  *time.Time `json:"early_access_date"`
	IsAvailable      bool       `json:"is_available"`
	Feature          string     `json:"feature"`
}

func (in GameInput) apply(game *models.Game) {
	game.Title = strings.TrimSpace(in.Title)
	game.Description = in.Description
	game.MediaURL = in.MediaURL
	game.Route = gameRoute(in.Route, game.Title)
	game.RTP = in.RTP
	game.Volatility = in.Volatility
	game.HitFrequency = in.HitFrequency
	game.MaxWin = in.MaxWin
	game.FreeSpinsTrigger = in.FreeSpinsTrigger
	game.Reels = in.Reels
	game.MinBet = in.MinBet
	game.MaxBet = in.MaxBet
	game.ReleaseDate = in.ReleaseDate
	game.EarlyAccessDate = in.EarlyAccessDate
	game.IsAvailable = in.IsAvailable
	game.Feature = in.Feature
}

// AvailabilityInput toggles a game's visibility.
type AvailabilityInput struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []models.Game  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// gameRoute returns route as "/games/<slug>", deriving the slug from the
// title when route is empty.
func gameRoute(route, title string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		route = Slugify(title)
	}
	route = strings.TrimPrefix(strings.Trim(route, "/"), "games/")
	return "/games/" + route
}

// Slugify lowercases s and joins its letters and digits with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == '\'':
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// endregion

// region --- Admin Handlers ---

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves a paginated list of games, including unavailable ones, with optional filtering by title.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Search query for game title"
// @Param        page    query     int     false  "Page number" default(1)
// @Param        limit   query     int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedGameResponse
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      503 {object} ErrorResponse "Backend unavailable"
// @Router       /admin/games [get]
func (h *Handler) GetGames(c *gin.Context) {
	opts := listOptions(c)
	set, err := h.Games.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Games not found", "Failed to retrieve games")
		return
	}
	c.JSON(http.StatusOK, paginated(set, opts, identity[models.Game]))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID" format(uuid)
// @Success      200 {object} models.Game
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	game, err := h.Games.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Game not found", "Failed to retrieve game")
		return
	}
	c.JSON(http.StatusOK, game)
}

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a new game. The route is derived from the title when omitted.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  models.Game
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var game models.Game
	input.apply(&game)

	if err := h.Games.Create(c.Request.Context(), &game); err != nil {
		h.fail(c, err, "Game not found", "Failed to create game")
		return
	}

	c.JSON(http.StatusCreated, game)
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Replaces a game's details.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string    true  "Game ID" format(uuid)
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  models.Game
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /admin/games/{id} [put]
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	game, err := h.Games.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Game not found", "Failed to retrieve game")
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.apply(game)

	if err := h.Games.Update(c.Request.Context(), game); err != nil {
		h.fail(c, err, "Game not found", "Failed to update game")
		return
	}

	c.JSON(http.StatusOK, game)
}

// SetGameAvailability godoc
// @Summary      Show or hide a game
// @Description  Unavailable games stay in the back office but are listed as "coming soon" publicly.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Game ID" format(uuid)
// @Param        input body      AvailabilityInput true  "Availability"
// @Success      200   {object}  map[string]bool "{"is_available": true}"
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /admin/games/{id}/availability [patch]
func (h *Handler) SetGameAvailability(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input AvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Games.SetAvailability(c.Request.Context(), id, *input.IsAvailable); err != nil {
		h.fail(c, err, "Game not found", "Failed to update game")
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_available": *input.IsAvailable})
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes an existing game.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Games.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Game not found", "Failed to delete game")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// endregion
