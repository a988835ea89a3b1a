package models

import "time"

// DashboardStats summarizes the whole inventory for the overview screen
type DashboardStats struct {
	StorageCount    int              `json:"storage_count"`
	ItemCount       int              `json:"item_count"`
	LowStockCount   int              `json:"low_stock_count"`
	OutOfStockCount int              `json:"out_of_stock_count"`
	TotalValue      float64          `json:"total_value"`
	RecentlyUpdated []*InventoryItem `json:"recently_updated"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
