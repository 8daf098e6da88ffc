package handler

import (
	"errors"
	"net/http"

	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type CareerInput struct {
	Title          string   `json:"title" binding:"required" example:"Senior Game Mathematician"`
	Requirements   []string `json:"requirements"`
	Description    string   `json:"description"`
	Department     string   `json:"department" example:"Game Design"`
	Location       string   `json:"location" example:"Remote"`
	EmploymentType string   `json:"employment_type" example:"Full-time"`
	IsActive       *bool    `json:"is_active"`
	SortOrder      int      `json:"sort_order"`
}

func (in CareerInput) apply(c *models.Career) {
	c.Title = in.Title
	c.Requirements = in.Requirements
	c.Description = in.Description
	c.Department = in.Department
	c.Location = in.Location
	c.EmploymentType = in.EmploymentType
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.SortOrder != 0 {
		c.SortOrder = in.SortOrder
	}
}

// MoveInput moves a career one slot up or down.
type MoveInput struct {
	Direction string `json:"direction" binding:"required,oneof=up down" example:"up"`
}

// endregion

// region --- Admin Handlers ---

// GetCareers godoc
// @Summary      Get every career in display order
// @Tags         admin-careers
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  models.Career
// @Failure      503 {object} ErrorResponse "Backend unavailable"
// @Router       /admin/careers [get]
func (h *Handler) GetCareers(c *gin.Context) {
	careers, err := h.Careers.List(c.Request.Context(), false)
	if err != nil {
		h.fail(c, err, "Careers not found", "Failed to retrieve careers")
		return
	}
	if careers == nil {
		careers = []models.Career{}
	}
	c.JSON(http.StatusOK, careers)
}

// CreateCareer godoc
// @Summary      Create a career
// @Description  New careers are active and appended to the end of the list unless told otherwise.
// @Tags         admin-careers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CareerInput true "Career"
// @Success      201 {object} models.Career
// @Failure      400 {object} ErrorResponse
// @Router       /admin/careers [post]
func (h *Handler) CreateCareer(c *gin.Context) {
	var input CareerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	career := models.Career{IsActive: true}
	input.apply(&career)
	if err := h.Careers.Create(c.Request.Context(), &career); err != nil {
		h.fail(c, err, "Career not found", "Failed to create career")
		return
	}
	c.JSON(http.StatusCreated, career)
}

// UpdateCareer godoc
// @Summary      Update a career
// @Tags         admin-careers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string      true "Career ID" format(uuid)
// @Param        input body CareerInput true "Career"
// @Success      200 {object} models.Career
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Career not found"
// @Router       /admin/careers/{id} [put]
func (h *Handler) UpdateCareer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	career, err := h.Careers.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Career not found", "Failed to retrieve career")
		return
	}

	var input CareerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.apply(career)

	if err := h.Careers.Update(c.Request.Context(), career); err != nil {
		h.fail(c, err, "Career not found", "Failed to update career")
		return
	}
	c.JSON(http.StatusOK, career)
}

// MoveCareer godoc
// @Summary      Reorder a career
// @Description  Swaps the career's sort order with its neighbour in the given direction.
// @Tags         admin-careers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string    true "Career ID" format(uuid)
// @Param        input body MoveInput true "Direction"
// @Success      200 {array}  models.Career
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Career not found"
// @Failure      409 {object} ErrorResponse "Already first or last"
// @Router       /admin/careers/{id}/move [post]
func (h *Handler) MoveCareer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input MoveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := repository.ParseDirection(input.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Careers.Move(c.Request.Context(), id, dir); err != nil {
		if errors.Is(err, repository.ErrAtEdge) {
			c.JSON(http.StatusConflict, gin.H{"error": "Career is already " + edgeName(dir)})
			return
		}
		h.fail(c, err, "Career not found", "Failed to move career")
		return
	}

	h.GetCareers(c)
}

// DeleteCareer godoc
// @Summary      Delete a career
// @Tags         admin-careers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Career ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "Career not found"
// @Router       /admin/careers/{id} [delete]
func (h *Handler) DeleteCareer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Careers.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Career not found", "Failed to delete career")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Career deleted"})
}

func edgeName(dir repository.Direction) string {
	if dir == repository.Up {
		return "first"
	}
	return "last"
}

// endregion
