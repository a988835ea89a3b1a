package repositories

import (
	"context"
	"fmt"
	"strings"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.ItemFilter) ([]*models.InventoryItem, error)
	RecordCount(ctx context.Context, adj *models.CountAdjustment) (*models.InventoryItem, error)
}

type itemRepo struct {
	db DB
}

func NewItemRepository(db DB) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, name, description, sku, barcode, current_quantity, min_quantity, max_quantity,
		unit_cost, is_out_of_stock, storage_id, uom_id, created_at, updated_at`

func scanItem(row scanner) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	var storageID, uomID *uuid.UUID
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.SKU, &item.Barcode,
		&item.CurrentQuantity, &item.MinQuantity, &item.MaxQuantity, &item.UnitCost,
		&item.IsOutOfStock, &storageID, &uomID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Storage = models.RefFromPtr(storageID)
	item.Unit = models.RefFromPtr(uomID)
	return item, nil
}

func collectItems(rows pgx.Rows) ([]*models.InventoryItem, error) {
	defer rows.Close()
	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.SKU, item.Barcode,
		item.CurrentQuantity, item.MinQuantity, item.MaxQuantity, item.UnitCost,
		item.IsOutOfStock, item.Storage.Ptr(), item.Unit.Ptr(), item.CreatedAt, item.UpdatedAt,
	)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE id = $1
	`
	return scanItem(r.db.QueryRow(ctx, query, id))
}

// Update writes the item's descriptive fields and quantity. The count ledger
// is not touched.
func (r *itemRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, description = $2, sku = $3, barcode = $4, current_quantity = $5,
			min_quantity = $6, max_quantity = $7, unit_cost = $8, is_out_of_stock = $9,
			storage_id = $10, uom_id = $11, updated_at = $12
		WHERE id = $13
	`
	tag, err := r.db.Exec(ctx, query,
		item.Name, item.Description, item.SKU, item.Barcode, item.CurrentQuantity,
		item.MinQuantity, item.MaxQuantity, item.UnitCost, item.IsOutOfStock,
		item.Storage.Ptr(), item.Unit.Ptr(), item.UpdatedAt, item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the item and its count history in one transaction.
func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM count_adjustments WHERE item_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *itemRepo) List(ctx context.Context, filter models.ItemFilter) ([]*models.InventoryItem, error) {
	var conditions []string
	var args []interface{}

	if filter.StorageID != nil {
		args = append(args, *filter.StorageID)
		conditions = append(conditions, fmt.Sprintf("storage_id = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	switch filter.Status {
	case models.ItemStatusLowStock:
		conditions = append(conditions, "current_quantity <= min_quantity")
	case models.ItemStatusOutOfStock:
		conditions = append(conditions, "is_out_of_stock")
	}

	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items`
	if len(conditions) > 0 {
		query += `
		WHERE ` + strings.Join(conditions, " AND ")
	}
	query += `
		ORDER BY name`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(`
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

// RecordCount reconciles an item against a physical count. The item row is
// locked for the duration of the transaction; the previous quantity is read
// under the lock, the ledger entry is appended and the item's quantity is
// replaced. adj.PreviousQuantity is filled in. On any failure nothing is
// written.
func (r *itemRepo) RecordCount(ctx context.Context, adj *models.CountAdjustment) (*models.InventoryItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, tx)

	item, err := scanItem(tx.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM inventory_items
		WHERE id = $1
		FOR UPDATE
	`, adj.ItemID))
	if err != nil {
		return nil, err
	}

	adj.PreviousQuantity = item.CurrentQuantity
	if _, err := tx.Exec(ctx, `
		INSERT INTO count_adjustments (id, item_id, previous_quantity, counted_quantity, adjustment_reason, notes, count_date, counted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, adj.ID, adj.ItemID, adj.PreviousQuantity, adj.CountedQuantity, adj.AdjustmentReason, adj.Notes, adj.CountDate, adj.CountedBy); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE inventory_items
		SET current_quantity = $1, updated_at = $2
		WHERE id = $3
	`, adj.CountedQuantity, adj.CountDate, adj.ItemID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	item.CurrentQuantity = adj.CountedQuantity
	item.UpdatedAt = adj.CountDate
	return item, nil
}
