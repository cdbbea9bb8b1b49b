package handlers

import (
	"net/http"

	"afterhourshvac/internal/analytics"

	"github.com/labstack/echo/v4"
)

// StatsHandlers serves the admin dashboard figures.
type StatsHandlers struct {
	analytics *analytics.AnalyticsService
}

// NewStatsHandlers creates a new stats handlers instance
func NewStatsHandlers(analyticsService *analytics.AnalyticsService) *StatsHandlers {
	return &StatsHandlers{analytics: analyticsService}
}

// Dashboard handles GET /api/admin/stats. Pass refresh=true to bypass the cache.
func (h *StatsHandlers) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("refresh") == "true" {
		stats, err := h.analytics.RefreshDashboardStats(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}
		return c.JSON(http.StatusOK, stats)
	}

	stats, err := h.analytics.DashboardStats(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	return c.JSON(http.StatusOK, stats)
}
