package services

import (
	"context"
	"io"
	"sync"
	"time"

	"stockroom/internal/events"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStorageRepository struct {
	mock.Mock
}

func (m *MockStorageRepository) Create(ctx context.Context, storage *models.Storage) error {
	args := m.Called(ctx, storage)
	return args.Error(0)
}

func (m *MockStorageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Storage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Storage), args.Error(1)
}

func (m *MockStorageRepository) Update(ctx context.Context, storage *models.Storage) error {
	args := m.Called(ctx, storage)
	return args.Error(0)
}

func (m *MockStorageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorageRepository) List(ctx context.Context, limit, offset int) ([]*models.StorageWithMetrics, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.StorageWithMetrics), args.Error(1)
}

func (m *MockStorageRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, filter models.ItemFilter) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) RecordCount(ctx context.Context, adj *models.CountAdjustment) (*models.InventoryItem, error) {
	args := m.Called(ctx, adj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

type MockCountAdjustmentRepository struct {
	mock.Mock
}

func (m *MockCountAdjustmentRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.CountAdjustment, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]*models.CountAdjustment), args.Error(1)
}

func (m *MockCountAdjustmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CountAdjustment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CountAdjustment), args.Error(1)
}

type MockUnitOfMeasureRepository struct {
	mock.Mock
}

func (m *MockUnitOfMeasureRepository) List(ctx context.Context) ([]*models.UnitOfMeasure, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UnitOfMeasure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitOfMeasureRepository) Update(ctx context.Context, unit *models.UnitOfMeasure) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitOfMeasureRepository) SeedDefaults(ctx context.Context, units []models.UnitOfMeasure) (int, error) {
	args := m.Called(ctx, units)
	return args.Int(0), args.Error(1)
}

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

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockCacheService) SetItem(ctx context.Context, item *models.InventoryItem, ttl time.Duration) error {
	args := m.Called(ctx, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCacheService) GetDashboard(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockCacheService) SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteDashboard(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateAllCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) names() []events.Name {
	p.mu.Lock()
	defer p.mu.Unlock()
	var names []events.Name
	for _, e := range p.events {
		names = append(names, e.Name)
	}
	return names
}
