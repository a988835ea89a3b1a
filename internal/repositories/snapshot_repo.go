package repositories

import (
	"context"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SnapshotRepository reads every collection a report needs from one
// consistent view of the database.
type SnapshotRepository interface {
	Load(ctx context.Context, storageID *uuid.UUID) (*models.Snapshot, error)
}

type snapshotRepo struct {
	db DB
}

func NewSnapshotRepository(db DB) SnapshotRepository {
	return &snapshotRepo{db: db}
}

// Load reads units, storages and items inside a read-only repeatable-read
// transaction. A non-nil storageID limits items to that storage.
func (r *snapshotRepo) Load(ctx context.Context, storageID *uuid.UUID) (*models.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, tx)

	snap := &models.Snapshot{TakenAt: time.Now().UTC()}

	unitRows, err := tx.Query(ctx, `
		SELECT `+uomColumns+`
		FROM units_of_measure
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, err
	}
	for unitRows.Next() {
		u, err := scanUnit(unitRows)
		if err != nil {
			unitRows.Close()
			return nil, err
		}
		snap.Units = append(snap.Units, u)
	}
	unitRows.Close()
	if err := unitRows.Err(); err != nil {
		return nil, err
	}

	storageRows, err := tx.Query(ctx, `
		SELECT id, name, location, description, color, created_at, updated_at
		FROM storages
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	for storageRows.Next() {
		s := &models.Storage{}
		if err := storageRows.Scan(&s.ID, &s.Name, &s.Location, &s.Description, &s.Color, &s.CreatedAt, &s.UpdatedAt); err != nil {
			storageRows.Close()
			return nil, err
		}
		snap.Storages = append(snap.Storages, s)
	}
	storageRows.Close()
	if err := storageRows.Err(); err != nil {
		return nil, err
	}

	itemQuery := `
		SELECT ` + itemColumns + `
		FROM inventory_items`
	var args []interface{}
	if storageID != nil {
		itemQuery += `
		WHERE storage_id = $1`
		args = append(args, *storageID)
	}
	itemQuery += `
		ORDER BY created_at, id`

	itemRows, err := tx.Query(ctx, itemQuery, args...)
	if err != nil {
		return nil, err
	}
	if snap.Items, err = collectItems(itemRows); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}
