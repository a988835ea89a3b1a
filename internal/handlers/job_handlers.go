package handlers

import (
	"context"
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/jobs"

	"github.com/labstack/echo/v4"
)

// LowStockChecker is satisfied by jobs.InventoryAlertService
type LowStockChecker interface {
	CheckLowStock(ctx context.Context) ([]jobs.InventoryAlert, error)
	LogLowStockAlerts(alerts []jobs.InventoryAlert)
}

// JobHandlers runs the background jobs on demand
type JobHandlers struct {
	inventoryAlerts LowStockChecker
	analytics       jobs.DashboardRefresher
}

func NewJobHandlers(inventoryAlerts LowStockChecker, analytics jobs.DashboardRefresher) *JobHandlers {
	return &JobHandlers{
		inventoryAlerts: inventoryAlerts,
		analytics:       analytics,
	}
}

// GetInventoryAlerts lists the items that are low or out of stock
func (h *JobHandlers) GetInventoryAlerts(c echo.Context) error {
	alerts, err := h.inventoryAlerts.CheckLowStock(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to check inventory alerts")
	}
	h.inventoryAlerts.LogLowStockAlerts(alerts)

	if alerts == nil {
		alerts = []jobs.InventoryAlert{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// TriggerAnalyticsRefresh recomputes the dashboard without waiting for the schedule
func (h *JobHandlers) TriggerAnalyticsRefresh(c echo.Context) error {
	stats, err := h.analytics.Refresh(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
