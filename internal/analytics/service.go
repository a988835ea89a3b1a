package analytics

import (
	"context"
	"sort"
	"time"

	"stockroom/internal/caching"
	"stockroom/internal/common"
	"stockroom/internal/metrics"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// RecentlyUpdatedLimit is how many items the dashboard lists.
	RecentlyUpdatedLimit = 5
	dashboardTTL         = 10 * time.Minute
)

// AnalyticsService computes and caches the dashboard overview
type AnalyticsService struct {
	snapshots    repositories.SnapshotRepository
	cacheService caching.CacheService
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewAnalyticsService(snapshots repositories.SnapshotRepository, cacheService caching.CacheService, m *metrics.Metrics, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		snapshots:    snapshots,
		cacheService: cacheService,
		metrics:      m,
		logger:       logger,
	}
}

// Dashboard serves the cached overview, computing it on a miss.
func (a *AnalyticsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	cached, err := a.cacheService.GetDashboard(ctx)
	if err != nil {
		a.logger.Warn("dashboard cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}
	return a.Refresh(ctx)
}

// Refresh recomputes the overview from a fresh snapshot, stores it in the
// cache and publishes the stock gauges.
func (a *AnalyticsService) Refresh(ctx context.Context) (*models.DashboardStats, error) {
	snap, err := a.snapshots.Load(ctx, nil)
	if err != nil {
		return nil, common.NewPersistenceError("load dashboard data", err)
	}

	stats := ComputeDashboard(snap)

	if a.metrics != nil {
		a.metrics.LowStockItems.Set(float64(stats.LowStockCount))
		a.metrics.OutOfStockItems.Set(float64(stats.OutOfStockCount))
		a.metrics.InventoryTotalValue.Set(stats.TotalValue)
	}
	if err := a.cacheService.SetDashboard(ctx, stats, dashboardTTL); err != nil {
		a.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return stats, nil
}

// ComputeDashboard aggregates a snapshot.
func ComputeDashboard(snap *models.Snapshot) *models.DashboardStats {
	stats := &models.DashboardStats{
		StorageCount: len(snap.Storages),
		ItemCount:    len(snap.Items),
		GeneratedAt:  snap.TakenAt,
	}

	total := decimal.Zero
	for _, item := range snap.Items {
		if item.IsLowStock() {
			stats.LowStockCount++
		}
		if item.IsOutOfStock {
			stats.OutOfStockCount++
		}
		total = total.Add(decimal.NewFromFloat(item.TotalValue()))
	}
	stats.TotalValue = total.Round(2).InexactFloat64()

	recent := make([]*models.InventoryItem, len(snap.Items))
	copy(recent, snap.Items)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if len(recent) > RecentlyUpdatedLimit {
		recent = recent[:RecentlyUpdatedLimit]
	}
	stats.RecentlyUpdated = recent
	return stats
}
