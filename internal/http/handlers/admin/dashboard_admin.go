package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/giftgalore/api/internal/http/response"
	"github.com/giftgalore/api/internal/service"

	"github.com/gin-gonic/gin"
)

func parseDashboardTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// GetDashboardOverview returns the headline numbers plus the low-stock and
// recent-order widgets.
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	overview, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch dashboard overview", err)
		return
	}
	response.Success(c, overview)
}

// GetDashboardTrends returns daily order and revenue points for a window.
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	trends, err := h.DashboardService.GetTrends(c.Request.Context(), service.DashboardQueryInput{
		Range:        strings.TrimSpace(c.DefaultQuery("range", "7d")),
		From:         parseDashboardTime(c.Query("from")),
		To:           parseDashboardTime(c.Query("to")),
		ForceRefresh: c.Query("refresh") == "true",
	})
	if err != nil {
		if errors.Is(err, service.ErrDashboardRangeInvalid) {
			respondError(c, response.CodeBadRequest, "invalid trend window", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch dashboard trends", err)
		return
	}
	response.Success(c, trends)
}
