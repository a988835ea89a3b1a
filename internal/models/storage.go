package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStorageColor is applied when a storage is created without a color.
const DefaultStorageColor = "#007AFF"

type Storage struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// StorageWithMetrics is a storage together with aggregates over the items it owns
type StorageWithMetrics struct {
	Storage
	ItemCount     int     `json:"item_count" db:"item_count"`
	TotalQuantity float64 `json:"total_quantity" db:"total_quantity"`
}

// NewStorageWithMetrics aggregates the items owned by s. Items belonging to
// other storages are ignored.
func NewStorageWithMetrics(s *Storage, items []*InventoryItem) *StorageWithMetrics {
	m := &StorageWithMetrics{Storage: *s}
	for _, item := range items {
		if id, ok := item.Storage.Get(); !ok || id != s.ID {
			continue
		}
		m.ItemCount++
		m.TotalQuantity += item.CurrentQuantity
	}
	return m
}
