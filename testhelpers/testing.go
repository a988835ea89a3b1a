package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"stockroom/internal/models"
	"stockroom/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TestDB holds a migrated database for integration tests
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to TEST_DATABASE_URL and applies the migrations. The
// test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	logger := zap.NewNop()
	if err := database.Migrate(dsn, logger); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	truncate := func() error {
		_, err := pool.Exec(ctx, `TRUNCATE count_adjustments, inventory_items, storages, units_of_measure`)
		return err
	}
	if err := truncate(); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() {
			_ = truncate()
			pool.Close()
		},
	}
}

// NewStorage builds an unsaved storage with fixed timestamps.
func NewStorage(name string) *models.Storage {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Storage{
		ID:        uuid.New(),
		Name:      name,
		Location:  name + " location",
		Color:     models.DefaultStorageColor,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// NewItem builds an unsaved, unassigned item.
func NewItem(name string, current, min, max, unitCost float64) *models.InventoryItem {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.InventoryItem{
		ID:              uuid.New(),
		Name:            name,
		SKU:             "SKU-" + name,
		CurrentQuantity: current,
		MinQuantity:     min,
		MaxQuantity:     max,
		UnitCost:        unitCost,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

// InStorage assigns item to storage and returns the item.
func InStorage(item *models.InventoryItem, storage *models.Storage) *models.InventoryItem {
	item.Storage = models.AssignedTo(storage.ID)
	return item
}

// Snapshot bundles storages and items, together with the standard units.
func Snapshot(storages []*models.Storage, items ...*models.InventoryItem) *models.Snapshot {
	var units []*models.UnitOfMeasure
	for _, u := range models.StandardUnits() {
		u := u
		u.ID = uuid.New()
		units = append(units, &u)
	}
	return &models.Snapshot{
		Units:    units,
		Storages: storages,
		Items:    items,
		TakenAt:  time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}
