package handlers

import (
	"context"
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/models"

	"github.com/labstack/echo/v4"
)

// DashboardProvider is satisfied by analytics.AnalyticsService
type DashboardProvider interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type DashboardHandlers struct {
	analytics DashboardProvider
}

func NewDashboardHandlers(analytics DashboardProvider) *DashboardHandlers {
	return &DashboardHandlers{analytics: analytics}
}

func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	stats, err := h.analytics.Dashboard(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
