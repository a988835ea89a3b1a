package jobs

import (
	"context"
	"errors"
	"testing"

	"stockroom/internal/models"
	"stockroom/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockSnapshotRepository mocks the SnapshotRepository interface for testing
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context, storageID *uuid.UUID) (*models.Snapshot, error) {
	args := m.Called(ctx, storageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snapshot), args.Error(1)
}

type InventoryAlertServiceTestSuite struct {
	suite.Suite
	snapshots *MockSnapshotRepository
	logs      *observer.ObservedLogs
	service   *InventoryAlertService
	ctx       context.Context
}

func (suite *InventoryAlertServiceTestSuite) SetupTest() {
	suite.snapshots = new(MockSnapshotRepository)
	core, logs := observer.New(zap.DebugLevel)
	suite.logs = logs
	suite.service = NewInventoryAlertService(suite.snapshots, zap.New(core))
	suite.ctx = context.Background()
}

func (suite *InventoryAlertServiceTestSuite) TearDownTest() {
	suite.snapshots.AssertExpectations(suite.T())
}

func TestInventoryAlertServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryAlertServiceTestSuite))
}

func (suite *InventoryAlertServiceTestSuite) TestCheckLowStock_SelectsItemsNeedingAttention() {
	pantry := &models.Storage{ID: uuid.New(), Name: "Pantry"}
	low := &models.InventoryItem{ID: uuid.New(), Name: "Flour", CurrentQuantity: 1, MinQuantity: 2, MaxQuantity: 10, Storage: models.AssignedTo(pantry.ID)}
	flagged := &models.InventoryItem{ID: uuid.New(), Name: "Salt", CurrentQuantity: 20, MinQuantity: 2, MaxQuantity: 10, IsOutOfStock: true}
	healthy := &models.InventoryItem{ID: uuid.New(), Name: "Rice", CurrentQuantity: 5, MinQuantity: 2, MaxQuantity: 10}

	suite.snapshots.On("Load", suite.ctx, (*uuid.UUID)(nil)).Return(&models.Snapshot{
		Items:    []*models.InventoryItem{low, flagged, healthy},
		Storages: []*models.Storage{pantry},
	}, nil).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), alerts, 2)
	assert.Equal(suite.T(), "Flour", alerts[0].ItemName)
	assert.Equal(suite.T(), "Pantry", alerts[0].StorageName)
	assert.Equal(suite.T(), models.StockStatusLowStock, alerts[0].Status)
	assert.Equal(suite.T(), "MEDIUM", alerts[0].Priority)
	assert.Equal(suite.T(), "Salt", alerts[1].ItemName)
	assert.Equal(suite.T(), "No Storage", alerts[1].StorageName)
	assert.Equal(suite.T(), "HIGH", alerts[1].Priority)
}

func (suite *InventoryAlertServiceTestSuite) TestCheckLowStock_FixtureSnapshot() {
	cellar := testhelpers.NewStorage("Cellar")
	empty := testhelpers.InStorage(testhelpers.NewItem("Wine", 0, 2, 10, 12), cellar)
	full := testhelpers.InStorage(testhelpers.NewItem("Beer", 15, 2, 10, 3), cellar)

	suite.snapshots.On("Load", suite.ctx, (*uuid.UUID)(nil)).
		Return(testhelpers.Snapshot([]*models.Storage{cellar}, empty, full), nil).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), alerts, 1)
	assert.Equal(suite.T(), empty.ID, alerts[0].ItemID)
	assert.Equal(suite.T(), "Cellar", alerts[0].StorageName)
	assert.Equal(suite.T(), "SKU-Wine", alerts[0].SKU)
}

func (suite *InventoryAlertServiceTestSuite) TestCheckLowStock_LoadError() {
	suite.snapshots.On("Load", suite.ctx, (*uuid.UUID)(nil)).Return(nil, errors.New("connection refused")).Once()

	alerts, err := suite.service.CheckLowStock(suite.ctx)

	assert.Nil(suite.T(), alerts)
	assert.EqualError(suite.T(), err, "connection refused")
}

func (suite *InventoryAlertServiceTestSuite) TestScheduledLowStockCheck_LogsEachAlert() {
	item := &models.InventoryItem{ID: uuid.New(), Name: "Yeast", CurrentQuantity: 0, MinQuantity: 1}
	suite.snapshots.On("Load", suite.ctx, (*uuid.UUID)(nil)).Return(&models.Snapshot{Items: []*models.InventoryItem{item}}, nil).Once()

	err := suite.service.ScheduledLowStockCheck(suite.ctx)

	require.NoError(suite.T(), err)
	warnings := suite.logs.FilterMessage("low stock").All()
	require.Len(suite.T(), warnings, 1)
	assert.Equal(suite.T(), "Yeast", warnings[0].ContextMap()["item"])
}

func (suite *InventoryAlertServiceTestSuite) TestScheduledLowStockCheck_NoAlerts() {
	suite.snapshots.On("Load", suite.ctx, (*uuid.UUID)(nil)).Return(&models.Snapshot{}, nil).Once()

	require.NoError(suite.T(), suite.service.ScheduledLowStockCheck(suite.ctx))
	assert.Equal(suite.T(), 1, suite.logs.FilterMessage("no low stock alerts").Len())
}

type stubRefresher struct {
	stats *models.DashboardStats
	err   error
	calls int
}

func (s *stubRefresher) Refresh(context.Context) (*models.DashboardStats, error) {
	s.calls++
	return s.stats, s.err
}

func TestAnalyticsRefreshService_PropagatesError(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("snapshot failed")}
	service := NewAnalyticsRefreshService(refresher, zap.NewNop())

	err := service.ScheduledAnalyticsRefresh(context.Background())
	assert.EqualError(t, err, "snapshot failed")
	assert.Equal(t, 1, refresher.calls)
}

func TestAnalyticsRefreshService_Success(t *testing.T) {
	refresher := &stubRefresher{stats: &models.DashboardStats{ItemCount: 4}}
	service := NewAnalyticsRefreshService(refresher, zap.NewNop())

	assert.NoError(t, service.ScheduledAnalyticsRefresh(context.Background()))
}
