package handler

import (
	"net/http"
	"strconv"

	"gamestudio/website/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type NewsInput struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	ImageURL  string `json:"image_url"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

func (in NewsInput) apply(n *models.News) {
	n.Title = in.Title
	n.Content = in.Content
	n.Excerpt = in.Excerpt
	n.ImageURL = in.ImageURL
	n.Author = in.Author
	n.Published = in.Published
}

// PublishInput publishes or unpublishes an article.
type PublishInput struct {
	Published *bool `json:"published" binding:"required"`
}

// PaginatedNewsResponse defines the structure for a paginated list of articles.
type PaginatedNewsResponse struct {
	Data []models.News  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// region --- Admin Handlers ---

// GetNews godoc
// @Summary      Get a list of articles
// @Tags         admin-news
// @Produce      json
// @Security     BearerAuth
// @Param        published_only query bool false "Return only published articles"
// @Param        page    query     int     false  "Page number" default(1)
// @Param        limit   query     int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedNewsResponse
// @Failure      503 {object} ErrorResponse "Backend unavailable"
// @Router       /admin/news [get]
func (h *Handler) GetNews(c *gin.Context) {
	opts := listOptions(c)
	publishedOnly, _ := strconv.ParseBool(c.Query("published_only"))

	set, err := h.News.List(c.Request.Context(), publishedOnly, opts)
	if err != nil {
		h.fail(c, err, "News not found", "Failed to retrieve news")
		return
	}
	c.JSON(http.StatusOK, paginated(set, opts, identity[models.News]))
}

// CreateNews godoc
// @Summary      Create an article
// @Description  Articles are usually drafted unpublished.
// @Tags         admin-news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NewsInput true "Article"
// @Success      201 {object} models.News
// @Failure      400 {object} ErrorResponse
// @Router       /admin/news [post]
func (h *Handler) CreateNews(c *gin.Context) {
	var input NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var n models.News
	input.apply(&n)
	if err := h.News.Create(c.Request.Context(), &n); err != nil {
		h.fail(c, err, "News not found", "Failed to create news")
		return
	}
	c.JSON(http.StatusCreated, n)
}

// UpdateNews godoc
// @Summary      Update an article
// @Tags         admin-news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string    true "News ID" format(uuid)
// @Param        input body NewsInput true "Article"
// @Success      200 {object} models.News
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "News not found"
// @Router       /admin/news/{id} [put]
func (h *Handler) UpdateNews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	n, err := h.News.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "News not found", "Failed to retrieve news")
		return
	}

	var input NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.apply(n)

	if err := h.News.Update(c.Request.Context(), n); err != nil {
		h.fail(c, err, "News not found", "Failed to update news")
		return
	}
	c.JSON(http.StatusOK, n)
}

// PublishNews godoc
// @Summary      Publish or unpublish an article
// @Tags         admin-news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string       true "News ID" format(uuid)
// @Param        input body PublishInput true "Published flag"
// @Success      200 {object} map[string]bool "{"published": true}"
// @Failure      404 {object} ErrorResponse "News not found"
// @Router       /admin/news/{id}/publish [patch]
func (h *Handler) PublishNews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input PublishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.News.SetPublished(c.Request.Context(), id, *input.Published); err != nil {
		h.fail(c, err, "News not found", "Failed to update news")
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": *input.Published})
}

// DeleteNews godoc
// @Summary      Delete an article
// @Tags         admin-news
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "News ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "News not found"
// @Router       /admin/news/{id} [delete]
func (h *Handler) DeleteNews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.News.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "News not found", "Failed to delete news")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
}

// endregion
