package handlers

import (
	"context"

	"stockroom/internal/jobs"
	"stockroom/internal/models"
	"stockroom/internal/reports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Create(ctx context.Context, storage *models.Storage) error {
	args := m.Called(ctx, storage)
	return args.Error(0)
}

func (m *MockStorageService) GetByID(ctx context.Context, id uuid.UUID) (*models.Storage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Storage), args.Error(1)
}

func (m *MockStorageService) Update(ctx context.Context, storage *models.Storage) error {
	args := m.Called(ctx, storage)
	return args.Error(0)
}

func (m *MockStorageService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorageService) List(ctx context.Context, limit, offset int) ([]*models.StorageWithMetrics, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StorageWithMetrics), args.Error(1)
}

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemService) List(ctx context.Context, filter models.ItemFilter) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockItemService) RecordCount(ctx context.Context, itemID uuid.UUID, input models.RecordCountInput) (*models.CountAdjustment, error) {
	args := m.Called(ctx, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CountAdjustment), args.Error(1)
}

func (m *MockItemService) History(ctx context.Context, itemID uuid.UUID) ([]*models.CountAdjustment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CountAdjustment), args.Error(1)
}

type MockUnitOfMeasureService struct {
	mock.Mock
}

func (m *MockUnitOfMeasureService) List(ctx context.Context) ([]*models.UnitOfMeasure, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureService) GetByID(ctx context.Context, id uuid.UUID) (*models.UnitOfMeasure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureService) Default(ctx context.Context) (*models.UnitOfMeasure, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureService) SeedDefaults(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitOfMeasureService) Update(ctx context.Context, unit *models.UnitOfMeasure) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, kind reports.Kind, enc reports.Encoding, storageID *uuid.UUID) (string, error) {
	args := m.Called(ctx, kind, enc, storageID)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) Export(ctx context.Context, kind reports.Kind, format reports.Format, storageID *uuid.UUID) (*models.ExportResult, error) {
	args := m.Called(ctx, kind, format, storageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExportResult), args.Error(1)
}

type MockDashboardProvider struct {
	mock.Mock
}

func (m *MockDashboardProvider) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockDashboardProvider) Refresh(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

type MockLowStockChecker struct {
	mock.Mock
}

func (m *MockLowStockChecker) CheckLowStock(ctx context.Context) ([]jobs.InventoryAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jobs.InventoryAlert), args.Error(1)
}

func (m *MockLowStockChecker) LogLowStockAlerts(alerts []jobs.InventoryAlert) {
	m.Called(alerts)
}
