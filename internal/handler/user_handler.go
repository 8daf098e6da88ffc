package handler

import (
	"net/http"

	"gamestudio/website/internal/auth"
	"gamestudio/website/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// AdminFlagInput grants or revokes back-office access.
type AdminFlagInput struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// PaginatedUserResponse defines the structure for a paginated list of users.
type PaginatedUserResponse struct {
	Data []models.Profile `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// endregion

// region --- Admin Handlers ---

// SearchUsers godoc
// @Summary      Search profiles
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string false "Search query for email"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedUserResponse
// @Router       /admin/users [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	opts := listOptions(c)
	set, err := h.Profiles.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Users not found", "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, paginated(set, opts, identity[models.Profile]))
}

// SetUserAdmin godoc
// @Summary      Grant or revoke admin access
// @Description  Admins cannot revoke their own access.
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string         true "Profile ID" format(uuid)
// @Param        input body AdminFlagInput true "Admin flag"
// @Success      200 {object} map[string]bool "{"is_admin": true}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /admin/users/{id}/admin [patch]
func (h *Handler) SetUserAdmin(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input AdminFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if self, _ := auth.ProfileID(c); self == id && !*input.IsAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot revoke your own admin access"})
		return
	}

	if err := h.Profiles.SetAdmin(c.Request.Context(), id, *input.IsAdmin); err != nil {
		h.fail(c, err, "User not found", "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_admin": *input.IsAdmin})
}

// endregion
