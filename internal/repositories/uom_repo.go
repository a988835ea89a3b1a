package repositories

import (
	"context"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UnitOfMeasureRepository interface {
	List(ctx context.Context) ([]*models.UnitOfMeasure, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UnitOfMeasure, error)
	Update(ctx context.Context, unit *models.UnitOfMeasure) error
	SeedDefaults(ctx context.Context, units []models.UnitOfMeasure) (int, error)
}

type uomRepo struct {
	db DB
}

func NewUnitOfMeasureRepository(db DB) UnitOfMeasureRepository {
	return &uomRepo{db: db}
}

const uomColumns = `id, name, symbol, category, is_default, created_at`

func scanUnit(row scanner) (*models.UnitOfMeasure, error) {
	u := &models.UnitOfMeasure{}
	if err := row.Scan(&u.ID, &u.Name, &u.Symbol, &u.Category, &u.IsDefault, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns the registry in creation order.
func (r *uomRepo) List(ctx context.Context) ([]*models.UnitOfMeasure, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+uomColumns+`
		FROM units_of_measure
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.UnitOfMeasure
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *uomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UnitOfMeasure, error) {
	return scanUnit(r.db.QueryRow(ctx, `
		SELECT `+uomColumns+`
		FROM units_of_measure
		WHERE id = $1
	`, id))
}

func (r *uomRepo) Update(ctx context.Context, unit *models.UnitOfMeasure) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE units_of_measure
		SET name = $1, symbol = $2, category = $3, is_default = $4
		WHERE id = $5
	`, unit.Name, unit.Symbol, unit.Category, unit.IsDefault, unit.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SeedDefaults installs units only when the registry is empty and reports how
// many rows were inserted. Creation times are staggered so listing order
// follows the order of units.
func (r *uomRepo) SeedDefaults(ctx context.Context, units []models.UnitOfMeasure) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer rollback(ctx, tx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM units_of_measure`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	base := time.Now().UTC()
	for i, u := range units {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO units_of_measure (`+uomColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, u.ID, u.Name, u.Symbol, u.Category, u.IsDefault, base.Add(time.Duration(i)*time.Millisecond)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(units), nil
}
