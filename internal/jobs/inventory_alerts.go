package jobs

import (
	"context"

	"stockroom/internal/models"
	"stockroom/internal/reports"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InventoryAlertService struct {
	snapshots repositories.SnapshotRepository
	logger    *zap.Logger
}

// InventoryAlert describes an item that is low on stock or flagged out of
// stock.
type InventoryAlert struct {
	ItemID          uuid.UUID          `json:"item_id"`
	ItemName        string             `json:"item_name"`
	SKU             string             `json:"sku"`
	StorageName     string             `json:"storage_name"`
	CurrentQuantity float64            `json:"current_quantity"`
	MinQuantity     float64            `json:"min_quantity"`
	Status          models.StockStatus `json:"status"`
	Priority        string             `json:"priority"`
}

func NewInventoryAlertService(snapshots repositories.SnapshotRepository, logger *zap.Logger) *InventoryAlertService {
	return &InventoryAlertService{
		snapshots: snapshots,
		logger:    logger,
	}
}

// CheckLowStock returns an alert for every item that would appear on the
// low-stock report, in the same order.
func (a *InventoryAlertService) CheckLowStock(ctx context.Context) ([]InventoryAlert, error) {
	snap, err := a.snapshots.Load(ctx, nil)
	if err != nil {
		a.logger.Error("failed to load inventory for low stock check", zap.Error(err))
		return nil, err
	}

	var alerts []InventoryAlert
	for _, item := range reports.Select(reports.LowStockList, snap.Items) {
		storage, ok := snap.StorageName(item.Storage)
		if !ok {
			storage = reports.NoStorageLabel
		}
		alerts = append(alerts, InventoryAlert{
			ItemID:          item.ID,
			ItemName:        item.Name,
			SKU:             item.SKU,
			StorageName:     storage,
			CurrentQuantity: item.CurrentQuantity,
			MinQuantity:     item.MinQuantity,
			Status:          item.StockStatus(),
			Priority:        reports.Priority(item),
		})
	}
	return alerts, nil
}

func (a *InventoryAlertService) LogLowStockAlerts(alerts []InventoryAlert) {
	if len(alerts) == 0 {
		a.logger.Debug("no low stock alerts")
		return
	}

	for _, alert := range alerts {
		a.logger.Warn("low stock",
			zap.String("item", alert.ItemName),
			zap.String("sku", alert.SKU),
			zap.String("storage", alert.StorageName),
			zap.Float64("current_quantity", alert.CurrentQuantity),
			zap.Float64("min_quantity", alert.MinQuantity),
			zap.String("status", string(alert.Status)),
			zap.String("priority", alert.Priority))
	}
}

// ScheduledLowStockCheck is run by the job scheduler.
func (a *InventoryAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	a.LogLowStockAlerts(alerts)
	a.logger.Info("low stock check completed", zap.Int("alerts", len(alerts)))
	return nil
}
