package repositories

import (
	"context"

	"stockroom/internal/models"

	"github.com/google/uuid"
)

// CountAdjustmentRepository reads the count ledger. Entries are written only
// by ItemRepository.RecordCount and removed only with their item.
type CountAdjustmentRepository interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.CountAdjustment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CountAdjustment, error)
}

type countAdjustmentRepo struct {
	db DB
}

func NewCountAdjustmentRepository(db DB) CountAdjustmentRepository {
	return &countAdjustmentRepo{db: db}
}

const adjustmentColumns = `id, item_id, previous_quantity, counted_quantity, adjustment_reason, notes, count_date, counted_by`

func scanAdjustment(row scanner) (*models.CountAdjustment, error) {
	a := &models.CountAdjustment{}
	err := row.Scan(&a.ID, &a.ItemID, &a.PreviousQuantity, &a.CountedQuantity, &a.AdjustmentReason, &a.Notes, &a.CountDate, &a.CountedBy)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByItem returns the item's history, newest first.
func (r *countAdjustmentRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.CountAdjustment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+adjustmentColumns+`
		FROM count_adjustments
		WHERE item_id = $1
		ORDER BY count_date DESC
	`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []*models.CountAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}

func (r *countAdjustmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CountAdjustment, error) {
	return scanAdjustment(r.db.QueryRow(ctx, `
		SELECT `+adjustmentColumns+`
		FROM count_adjustments
		WHERE id = $1
	`, id))
}
