package models

import (
	"time"

	"github.com/google/uuid"
)

type UnitOfMeasure struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Symbol    string    `json:"symbol" db:"symbol"`
	Category  string    `json:"category" db:"category"`
	IsDefault bool      `json:"is_default" db:"is_default"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StandardUnits is the catalog installed into an empty registry.
// Order matters: it is the registry's listing order.
func StandardUnits() []UnitOfMeasure {
	return []UnitOfMeasure{
		{Name: "Pieces", Symbol: "pcs", Category: "Count", IsDefault: true},
		{Name: "Kilograms", Symbol: "kg", Category: "Weight"},
		{Name: "Grams", Symbol: "g", Category: "Weight"},
		{Name: "Liters", Symbol: "L", Category: "Volume"},
		{Name: "Milliliters", Symbol: "mL", Category: "Volume"},
		{Name: "Meters", Symbol: "m", Category: "Length"},
		{Name: "Centimeters", Symbol: "cm", Category: "Length"},
		{Name: "Boxes", Symbol: "box", Category: "Count"},
		{Name: "Packs", Symbol: "pack", Category: "Count"},
		{Name: "Dozens", Symbol: "doz", Category: "Count"},
	}
}
