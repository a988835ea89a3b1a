// Package reports projects an inventory snapshot into tabular reports and
// encodes them. Nothing in this package performs I/O: the same snapshot and
// options always produce the same output.
package reports

import (
	"fmt"
	"math"
	"time"

	"stockroom/internal/models"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	InventorySummary Kind = "inventory_summary"
	LowStockList     Kind = "low_stock_list"
	ReorderList      Kind = "reorder_list"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case InventorySummary, LowStockList, ReorderList:
		return k, nil
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

func (k Kind) Title() string {
	switch k {
	case LowStockList:
		return "Low Stock & Out of Stock Items"
	case ReorderList:
		return "Reorder List"
	default:
		return "Inventory Summary"
	}
}

func (k Kind) fileToken() string {
	switch k {
	case LowStockList:
		return "Low_Stock_List"
	case ReorderList:
		return "Reorder_List"
	default:
		return "Inventory_Summary"
	}
}

// Encoding selects the text form produced by Generate.
type Encoding string

const (
	DelimitedText Encoding = "csv"
	MarkupText    Encoding = "html"
)

func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(s); e {
	case DelimitedText, MarkupText:
		return e, nil
	}
	return "", fmt.Errorf("unknown report encoding %q", s)
}

const (
	NoStorageLabel = "No Storage"

	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"

	actionUrgent  = "URGENT: Restock"
	actionMonitor = "Monitor/Reorder"

	classUrgent  = "urgent"
	classWarning = "warning"
)

type Options struct {
	AppName        string
	CurrencySymbol string
	GeneratedAt    time.Time
}

// Cell is one formatted field. Money cells carry the currency symbol in
// encodings that show one. Class is a presentation hint: "urgent" or
// "warning".
type Cell struct {
	Value string
	Money bool
	Class string
}

type SummaryLine struct {
	Label string
	Value string
	Money bool
}

type Report struct {
	Kind        Kind
	Title       string
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]Cell
	Summary     []SummaryLine
}

var columns = map[Kind][]string{
	InventorySummary: {"Item Name", "SKU", "Storage", "Current Quantity", "UOM", "Unit Cost", "Total Value", "Stock Status", "Last Updated"},
	LowStockList:     {"Item Name", "SKU", "Storage", "Current Quantity", "Min Quantity", "UOM", "Stock Status", "Action Required"},
	ReorderList:      {"Item Name", "SKU", "Storage", "Current Quantity", "Max Quantity", "Reorder Quantity", "UOM", "Priority"},
}

// Select returns the items a report of kind k includes, in snapshot order.
func Select(k Kind, items []*models.InventoryItem) []*models.InventoryItem {
	if k == InventorySummary {
		return items
	}
	var selected []*models.InventoryItem
	for _, item := range items {
		if item.NeedsAttention() {
			selected = append(selected, item)
		}
	}
	return selected
}

// ReorderQuantity is the amount that refills an item to its maximum, but never
// less than its minimum.
func ReorderQuantity(item *models.InventoryItem) float64 {
	return math.Max(item.MaxQuantity-item.CurrentQuantity, item.MinQuantity)
}

func Priority(item *models.InventoryItem) string {
	if item.IsOutOfStock {
		return PriorityHigh
	}
	return PriorityMedium
}

// Build projects snap into a report of kind k. An empty snapshot yields the
// column row, no data rows and a zero-valued summary.
func Build(snap *models.Snapshot, k Kind, opts Options) *Report {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	selected := Select(k, snap.Items)

	r := &Report{
		Kind:        k,
		Title:       k.Title(),
		GeneratedAt: opts.GeneratedAt,
		Columns:     columns[k],
		Rows:        make([][]Cell, 0, len(selected)),
	}
	if r.Columns == nil {
		r.Kind = InventorySummary
		r.Columns = columns[InventorySummary]
	}

	for _, item := range selected {
		r.Rows = append(r.Rows, project(snap, r.Kind, item))
	}
	r.Summary = summarize(r.Kind, selected)
	return r
}

func project(snap *models.Snapshot, k Kind, item *models.InventoryItem) []Cell {
	storage, ok := snap.StorageName(item.Storage)
	if !ok {
		storage = NoStorageLabel
	}
	unit, _ := snap.UnitSymbol(item.Unit)

	switch k {
	case LowStockList:
		class, action := classWarning, actionMonitor
		if item.IsOutOfStock {
			class, action = classUrgent, actionUrgent
		}
		return []Cell{
			{Value: item.Name},
			{Value: item.SKU},
			{Value: storage},
			{Value: fixed(item.CurrentQuantity)},
			{Value: fixed(item.MinQuantity)},
			{Value: unit},
			{Value: string(item.StockStatus()), Class: class},
			{Value: action, Class: class},
		}
	case ReorderList:
		class := classWarning
		if item.IsOutOfStock {
			class = classUrgent
		}
		return []Cell{
			{Value: item.Name},
			{Value: item.SKU},
			{Value: storage},
			{Value: fixed(item.CurrentQuantity)},
			{Value: fixed(item.MaxQuantity)},
			{Value: fixed(ReorderQuantity(item))},
			{Value: unit},
			{Value: Priority(item), Class: class},
		}
	default:
		return []Cell{
			{Value: item.Name},
			{Value: item.SKU},
			{Value: storage},
			{Value: fixed(item.CurrentQuantity)},
			{Value: unit},
			{Value: fixed(item.UnitCost), Money: true},
			{Value: fixed(item.TotalValue()), Money: true},
			{Value: string(item.StockStatus()), Class: statusClass(item)},
			{Value: item.UpdatedAt.Format("2006-01-02")},
		}
	}
}

func statusClass(item *models.InventoryItem) string {
	switch {
	case item.IsOutOfStock:
		return classUrgent
	case item.IsLowStock():
		return classWarning
	}
	return ""
}

func summarize(k Kind, items []*models.InventoryItem) []SummaryLine {
	total := decimal.Zero
	var outOfStock, lowStock int
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.TotalValue()))
		if item.IsOutOfStock {
			outOfStock++
		}
		if item.IsLowStock() {
			lowStock++
		}
	}

	lines := []SummaryLine{
		{Label: "Total Items", Value: fmt.Sprint(len(items))},
		{Label: "Total Value", Value: total.StringFixed(2), Money: true},
		{Label: "Out of Stock", Value: fmt.Sprint(outOfStock)},
		{Label: "Low Stock", Value: fmt.Sprint(lowStock)},
	}
	if k == ReorderList {
		// every reorder row is HIGH or MEDIUM
		lines = append(lines,
			SummaryLine{Label: "High Priority", Value: fmt.Sprint(outOfStock)},
			SummaryLine{Label: "Medium Priority", Value: fmt.Sprint(len(items) - outOfStock)},
		)
	}
	return lines
}

// fixed renders v with exactly two decimal places, rounding half away from
// zero.
func fixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Generate builds the report and encodes it as text.
func Generate(snap *models.Snapshot, k Kind, enc Encoding, opts Options) (string, error) {
	r := Build(snap, k, opts)
	switch enc {
	case DelimitedText:
		return EncodeCSV(r)
	case MarkupText:
		return EncodeHTML(r, opts)
	}
	return "", fmt.Errorf("unknown report encoding %q", enc)
}

// FileName names an exported artifact, e.g.
// SmartInventory_Reorder_List_2024-03-01_14-05.csv.
func FileName(appName string, k Kind, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", appName, k.fileToken(), at.Format("2006-01-02_15-04"), ext)
}
