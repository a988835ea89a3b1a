package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StockStatus is the single health label derived for an item
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "Out of Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOverStock  StockStatus = "Over Stock"
	StockStatusInStock    StockStatus = "In Stock"
)

// ItemStatusFilter values accepted by ItemFilter.Status
const (
	ItemStatusLowStock   = "low_stock"
	ItemStatusOutOfStock = "out_of_stock"
)

// ItemFilter holds list criteria for inventory items
type ItemFilter struct {
	StorageID *uuid.UUID `json:"storage_id,omitempty"` // Only items owned by this storage
	Query     string     `json:"query,omitempty"`      // Case-insensitive match on name or SKU
	Status    string     `json:"status,omitempty"`     // low_stock, out_of_stock
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// InventoryItem is a stocked item. Storage and Unit are non-owning references;
// the item owns its count history.
type InventoryItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	SKU             string    `json:"sku" db:"sku"`
	Barcode         string    `json:"barcode" db:"barcode"`
	CurrentQuantity float64   `json:"current_quantity" db:"current_quantity"`
	MinQuantity     float64   `json:"min_quantity" db:"min_quantity"`
	MaxQuantity     float64   `json:"max_quantity" db:"max_quantity"`
	UnitCost        float64   `json:"unit_cost" db:"unit_cost"`
	IsOutOfStock    bool      `json:"is_out_of_stock" db:"is_out_of_stock"`
	Storage         Ref       `json:"storage_id" db:"storage_id"`
	Unit            Ref       `json:"uom_id" db:"uom_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// GenerateSKU returns the fallback SKU used when none is supplied.
func GenerateSKU() string {
	return "SKU-" + strings.ToUpper(uuid.NewString()[:6])
}

func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentQuantity <= i.MinQuantity
}

func (i *InventoryItem) IsOverStock() bool {
	return i.CurrentQuantity >= i.MaxQuantity && i.MaxQuantity > 0
}

func (i *InventoryItem) TotalValue() float64 {
	return i.CurrentQuantity * i.UnitCost
}

// StockStatus picks one label by priority. The out-of-stock flag wins
// regardless of quantity.
func (i *InventoryItem) StockStatus() StockStatus {
	switch {
	case i.IsOutOfStock:
		return StockStatusOutOfStock
	case i.IsLowStock():
		return StockStatusLowStock
	case i.IsOverStock():
		return StockStatusOverStock
	default:
		return StockStatusInStock
	}
}

// NeedsAttention reports whether the item belongs on low-stock and reorder lists.
func (i *InventoryItem) NeedsAttention() bool {
	return i.IsLowStock() || i.IsOutOfStock
}
