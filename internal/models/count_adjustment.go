package models

import (
	"time"

	"github.com/google/uuid"
)

// AdjustmentType classifies a count by the sign of its variance
type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "Increase"
	AdjustmentDecrease AdjustmentType = "Decrease"
	AdjustmentNoChange AdjustmentType = "No Change"
)

// DefaultCountedBy is recorded when no user identity is available
const DefaultCountedBy = "User"

// AdjustmentReasons lists the reasons offered to clients. Any non-empty
// reason is accepted.
var AdjustmentReasons = []string{
	"Physical Count",
	"Damaged",
	"Expired",
	"Sold",
	"Received",
	"Transferred",
	"Other",
}

// CountAdjustment is an immutable ledger entry written when an item's quantity
// is reconciled against a physical count.
type CountAdjustment struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ItemID           uuid.UUID `json:"item_id" db:"item_id"`
	PreviousQuantity float64   `json:"previous_quantity" db:"previous_quantity"`
	CountedQuantity  float64   `json:"counted_quantity" db:"counted_quantity"`
	AdjustmentReason string    `json:"adjustment_reason" db:"adjustment_reason"`
	Notes            string    `json:"notes" db:"notes"`
	CountDate        time.Time `json:"count_date" db:"count_date"`
	CountedBy        string    `json:"counted_by" db:"counted_by"`
}

// RecordCountInput carries the arguments of a count reconciliation
type RecordCountInput struct {
	CountedQuantity  float64
	AdjustmentReason string
	Notes            string
	CountedBy        string
}

func (c *CountAdjustment) Variance() float64 {
	return c.CountedQuantity - c.PreviousQuantity
}

// VariancePercentage is 0 when the previous quantity is not positive.
func (c *CountAdjustment) VariancePercentage() float64 {
	if c.PreviousQuantity <= 0 {
		return 0
	}
	return c.Variance() / c.PreviousQuantity * 100
}

func (c *CountAdjustment) AdjustmentType() AdjustmentType {
	v := c.Variance()
	switch {
	case v > 0:
		return AdjustmentIncrease
	case v < 0:
		return AdjustmentDecrease
	default:
		return AdjustmentNoChange
	}
}
