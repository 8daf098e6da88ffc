package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"gamestudio/website/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	liveBuffer    = 64
	liveHeartbeat = 25 * time.Second
)

// region --- Admin Handlers ---

// GetAnalyticsSummary godoc
// @Summary      Analytics summary
// @Description  Daily page views and sessions, top pages, interactions by type and device mix.
// @Tags         admin-analytics
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Window in days, today included" default(7)
// @Success      200 {object} repository.Summary
// @Failure      503 {object} ErrorResponse "Backend unavailable"
// @Router       /admin/analytics/summary [get]
func (h *Handler) GetAnalyticsSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		days = 7
	}

	summary, err := h.Analytics.Summary(c.Request.Context(), days)
	if err != nil {
		h.fail(c, err, "No analytics", "Failed to build analytics summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRecentPageViews godoc
// @Summary      Latest page views
// @Tags         admin-analytics
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum rows" default(50)
// @Success      200 {array}  models.PageView
// @Router       /admin/analytics/page-views [get]
func (h *Handler) GetRecentPageViews(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	views, err := h.Analytics.RecentPageViews(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err, "No analytics", "Failed to retrieve page views")
		return
	}
	if views == nil {
		views = []models.PageView{}
	}
	c.JSON(http.StatusOK, views)
}

// StreamPageViews godoc
// @Summary      Live page views
// @Description  Server-sent events: one "page_view" event per tracked page view, "ping" as heartbeat.
// @Tags         admin-analytics
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {object} models.PageView
// @Router       /admin/analytics/live [get]
func (h *Handler) StreamPageViews(c *gin.Context) {
	client := h.Live.Subscribe(LiveTopic, liveBuffer)
	defer h.Live.Unsubscribe(LiveTopic, client)

	heartbeat := time.NewTicker(liveHeartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"topic": LiveTopic})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case pv, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("page_view", pv)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

// PublishPageView forwards a stored page view to live stream subscribers.
func (h *Handler) PublishPageView(pv models.PageView) {
	h.Live.Broadcast(LiveTopic, pv)
}

// endregion
