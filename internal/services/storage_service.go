package services

import (
	"context"
	"strings"
	"time"

	"stockroom/internal/caching"
	"stockroom/internal/common"
	"stockroom/internal/events"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StorageService interface {
	Create(ctx context.Context, storage *models.Storage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Storage, error)
	Update(ctx context.Context, storage *models.Storage) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.StorageWithMetrics, error)
}

type storageService struct {
	storageRepo repositories.StorageRepository
	cache       caching.CacheService
	publisher   events.Publisher
	logger      *zap.Logger
}

func NewStorageService(storageRepo repositories.StorageRepository, cache caching.CacheService, publisher events.Publisher, logger *zap.Logger) StorageService {
	return &storageService{
		storageRepo: storageRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
	}
}

func validateStorage(storage *models.Storage) error {
	storage.Name = strings.TrimSpace(storage.Name)
	if storage.Name == "" {
		return common.NewValidationError("name", "storage name is required")
	}
	if storage.Color == "" {
		storage.Color = models.DefaultStorageColor
	}
	return nil
}

func (s *storageService) Create(ctx context.Context, storage *models.Storage) error {
	if err := validateStorage(storage); err != nil {
		return err
	}

	now := time.Now().UTC()
	storage.ID = uuid.New()
	storage.CreatedAt = now
	storage.UpdatedAt = now

	if err := s.storageRepo.Create(ctx, storage); err != nil {
		return common.NewPersistenceError("create storage", err)
	}

	s.invalidate(ctx)
	s.publisher.Publish(events.New(events.StorageCreated, storage.ID))
	return nil
}

func (s *storageService) GetByID(ctx context.Context, id uuid.UUID) (*models.Storage, error) {
	storage, err := s.storageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate("get storage", "storage", id, err)
	}
	return storage, nil
}

func (s *storageService) Update(ctx context.Context, storage *models.Storage) error {
	if err := validateStorage(storage); err != nil {
		return err
	}

	storage.UpdatedAt = time.Now().UTC()
	if err := s.storageRepo.Update(ctx, storage); err != nil {
		return translate("update storage", "storage", storage.ID, err)
	}

	s.invalidate(ctx)
	s.publisher.Publish(events.New(events.StorageUpdated, storage.ID))
	return nil
}

// Delete removes the storage with every item it owns and their count history.
func (s *storageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.storageRepo.Delete(ctx, id); err != nil {
		return translate("delete storage", "storage", id, err)
	}

	// cached items of this storage are unknown here
	if err := s.cache.InvalidateAllCache(ctx); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
	s.publisher.Publish(events.New(events.StorageDeleted, id))
	return nil
}

func (s *storageService) List(ctx context.Context, limit, offset int) ([]*models.StorageWithMetrics, error) {
	storages, err := s.storageRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, common.NewPersistenceError("list storages", err)
	}
	return storages, nil
}

func (s *storageService) invalidate(ctx context.Context) {
	if err := s.cache.DeleteDashboard(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
