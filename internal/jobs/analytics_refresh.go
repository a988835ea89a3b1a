package jobs

import (
	"context"
	"time"

	"stockroom/internal/models"

	"go.uber.org/zap"
)

// DashboardRefresher recomputes the cached dashboard.
type DashboardRefresher interface {
	Refresh(ctx context.Context) (*models.DashboardStats, error)
}

type AnalyticsRefreshService struct {
	analytics DashboardRefresher
	logger    *zap.Logger
}

func NewAnalyticsRefreshService(analytics DashboardRefresher, logger *zap.Logger) *AnalyticsRefreshService {
	return &AnalyticsRefreshService{
		analytics: analytics,
		logger:    logger,
	}
}

// ScheduledAnalyticsRefresh is run by the job scheduler.
func (a *AnalyticsRefreshService) ScheduledAnalyticsRefresh(ctx context.Context) error {
	start := time.Now()

	stats, err := a.analytics.Refresh(ctx)
	if err != nil {
		a.logger.Error("analytics refresh failed", zap.Error(err))
		return err
	}

	a.logger.Info("analytics refreshed",
		zap.Int("items", stats.ItemCount),
		zap.Int("low_stock", stats.LowStockCount),
		zap.Int("out_of_stock", stats.OutOfStockCount),
		zap.Float64("total_value", stats.TotalValue),
		zap.Duration("took", time.Since(start)))
	return nil
}
