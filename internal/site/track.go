package site

import (
	"context"
	"net/http"

	"gamestudio/website/internal/analytics"

	"github.com/gin-gonic/gin"
)

// ScrollInput reports how far down a page the visitor scrolled.
type ScrollInput struct {
	Path  string `json:"path" binding:"required" example:"/careers"`
	Depth *int   `json:"depth" binding:"required" example:"75"`
}

// UnloadInput names the page the visitor is leaving.
type UnloadInput struct {
	Path string `json:"path" binding:"required" example:"/careers"`
}

// trackInteraction godoc
// @Summary      Report an interaction
// @Description  Queued for the visitor's session. Dropped unless the visitor accepted analytics cookies.
// @Tags         tracking
// @Accept       json
// @Param        input body analytics.Interaction true "Interaction"
// @Success      202
// @Success      204 "No visitor session"
// @Failure      400 {object} map[string]string
// @Router       /track/interaction [post]
func (s *Site) trackInteraction(c *gin.Context) {
	sess, ok := visitor(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	var in analytics.Interaction
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.enqueue(analytics.KindInteraction, func(ctx context.Context) {
		sess.Tracker.TrackInteraction(ctx, in)
	})
	c.Status(http.StatusAccepted)
}

// trackScroll godoc
// @Summary      Report scroll depth
// @Tags         tracking
// @Accept       json
// @Param        input body ScrollInput true "Depth in percent"
// @Success      204
// @Failure      400 {object} map[string]string
// @Router       /track/scroll [post]
func (s *Site) trackScroll(c *gin.Context) {
	sess, ok := visitor(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	var in ScrollInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess.Tracker.RecordScroll(in.Path, *in.Depth)
	c.Status(http.StatusNoContent)
}

// trackUnload godoc
// @Summary      Report that the visitor left the page
// @Description  Sends a final page view carrying time on page and scroll depth. Dropped when the session already moved to another page.
// @Tags         tracking
// @Accept       json
// @Param        input body UnloadInput true "Page being left"
// @Success      202
// @Success      204 "No visitor session"
// @Failure      400 {object} map[string]string
// @Router       /track/unload [post]
func (s *Site) trackUnload(c *gin.Context) {
	sess, ok := visitor(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	var in UnloadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.enqueue(analytics.KindPageView, func(ctx context.Context) {
		sess.Tracker.Unload(ctx, in.Path)
	})
	c.Status(http.StatusAccepted)
}
