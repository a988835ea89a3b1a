package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_LoadScopedToStorage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	storageID := uuid.New()
	unitID := uuid.New()

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(`FROM units_of_measure`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "symbol", "category", "is_default", "created_at"}).
			AddRow(unitID, "Kilograms", "kg", "Weight", false, now))
	mock.ExpectQuery(`FROM storages`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "location", "description", "color", "created_at", "updated_at"}).
			AddRow(storageID, "Pantry", "", "", "#007AFF", now, now))
	mock.ExpectQuery(`FROM inventory_items\s+WHERE storage_id = \$1\s+ORDER BY created_at, id`).
		WithArgs(storageID).
		WillReturnRows(pgxmock.NewRows(itemRowColumns).
			AddRow(uuid.New(), "Rice", "", "RC-1", "", 3.0, 5.0, 10.0, 2.0, false, &storageID, &unitID, now, now))
	mock.ExpectCommit()

	snap, err := NewSnapshotRepository(mock).Load(context.Background(), &storageID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)

	name, ok := snap.StorageName(snap.Items[0].Storage)
	assert.True(t, ok)
	assert.Equal(t, "Pantry", name)
	symbol, _ := snap.UnitSymbol(snap.Items[0].Unit)
	assert.Equal(t, "kg", symbol)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_LoadKeepsInsertionOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	first, second := uuid.New(), uuid.New()

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	mock.ExpectQuery(`FROM units_of_measure`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "symbol", "category", "is_default", "created_at"}))
	mock.ExpectQuery(`FROM storages`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "location", "description", "color", "created_at", "updated_at"}))
	mock.ExpectQuery(`FROM inventory_items\s+ORDER BY created_at, id`).
		WillReturnRows(pgxmock.NewRows(itemRowColumns).
			AddRow(first, "Zucchini", "", "ZU-1", "", 3.0, 5.0, 10.0, 2.0, false, (*uuid.UUID)(nil), (*uuid.UUID)(nil), older, older).
			AddRow(second, "Apples", "", "AP-1", "", 1.0, 5.0, 10.0, 2.0, false, (*uuid.UUID)(nil), (*uuid.UUID)(nil), newer, newer))
	mock.ExpectCommit()

	snap, err := NewSnapshotRepository(mock).Load(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, first, snap.Items[0].ID)
	assert.Equal(t, second, snap.Items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
