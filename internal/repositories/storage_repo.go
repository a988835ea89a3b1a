package repositories

import (
	"context"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StorageRepository interface {
	Create(ctx context.Context, storage *models.Storage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Storage, error)
	Update(ctx context.Context, storage *models.Storage) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.StorageWithMetrics, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type storageRepo struct {
	db DB
}

func NewStorageRepository(db DB) StorageRepository {
	return &storageRepo{db: db}
}

func (r *storageRepo) Create(ctx context.Context, storage *models.Storage) error {
	query := `
		INSERT INTO storages (id, name, location, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, storage.ID, storage.Name, storage.Location, storage.Description, storage.Color, storage.CreatedAt, storage.UpdatedAt)
	return err
}

func (r *storageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Storage, error) {
	storage := &models.Storage{}
	query := `
		SELECT id, name, location, description, color, created_at, updated_at
		FROM storages
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&storage.ID, &storage.Name, &storage.Location, &storage.Description, &storage.Color, &storage.CreatedAt, &storage.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return storage, nil
}

func (r *storageRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM storages WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *storageRepo) Update(ctx context.Context, storage *models.Storage) error {
	query := `
		UPDATE storages
		SET name = $1, location = $2, description = $3, color = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, storage.Name, storage.Location, storage.Description, storage.Color, storage.UpdatedAt, storage.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the storage together with the items it owns and their count
// history, in one transaction.
func (r *storageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM count_adjustments
		WHERE item_id IN (SELECT id FROM inventory_items WHERE storage_id = $1)
	`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM inventory_items WHERE storage_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM storages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *storageRepo) List(ctx context.Context, limit, offset int) ([]*models.StorageWithMetrics, error) {
	query := `
		SELECT s.id, s.name, s.location, s.description, s.color, s.created_at, s.updated_at,
			COUNT(i.id) AS item_count, COALESCE(SUM(i.current_quantity), 0) AS total_quantity
		FROM storages s
		LEFT JOIN inventory_items i ON i.storage_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var storages []*models.StorageWithMetrics
	for rows.Next() {
		s := &models.StorageWithMetrics{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Description, &s.Color, &s.CreatedAt, &s.UpdatedAt, &s.ItemCount, &s.TotalQuantity); err != nil {
			return nil, err
		}
		storages = append(storages, s)
	}
	return storages, rows.Err()
}
