package services

import (
	"context"
	"math"
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

const itemCacheTTL = 5 * time.Minute

type ItemService interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.ItemFilter) ([]*models.InventoryItem, error)
	RecordCount(ctx context.Context, itemID uuid.UUID, input models.RecordCountInput) (*models.CountAdjustment, error)
	History(ctx context.Context, itemID uuid.UUID) ([]*models.CountAdjustment, error)
}

type itemService struct {
	itemRepo       repositories.ItemRepository
	adjustmentRepo repositories.CountAdjustmentRepository
	storageRepo    repositories.StorageRepository
	uomRepo        repositories.UnitOfMeasureRepository
	cache          caching.CacheService
	publisher      events.Publisher
	logger         *zap.Logger
	locks          *keyedMutex
}

func NewItemService(
	itemRepo repositories.ItemRepository,
	adjustmentRepo repositories.CountAdjustmentRepository,
	storageRepo repositories.StorageRepository,
	uomRepo repositories.UnitOfMeasureRepository,
	cache caching.CacheService,
	publisher events.Publisher,
	logger *zap.Logger,
) ItemService {
	return &itemService{
		itemRepo:       itemRepo,
		adjustmentRepo: adjustmentRepo,
		storageRepo:    storageRepo,
		uomRepo:        uomRepo,
		cache:          cache,
		publisher:      publisher,
		logger:         logger,
		locks:          newKeyedMutex(),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateItem checks the fields of an item and that its references resolve.
func (s *itemService) validateItem(ctx context.Context, item *models.InventoryItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return common.NewValidationError("name", "item name is required")
	}

	quantities := []struct {
		field string
		value float64
	}{
		{"current_quantity", item.CurrentQuantity},
		{"min_quantity", item.MinQuantity},
		{"max_quantity", item.MaxQuantity},
		{"unit_cost", item.UnitCost},
	}
	for _, q := range quantities {
		if !finite(q.value) {
			return common.NewValidationError(q.field, "must be a finite number")
		}
	}

	if id, ok := item.Storage.Get(); ok {
		exists, err := s.storageRepo.Exists(ctx, id)
		if err != nil {
			return common.NewPersistenceError("check storage", err)
		}
		if !exists {
			return common.NewNotFoundError("storage", id.String())
		}
	}
	if id, ok := item.Unit.Get(); ok {
		if _, err := s.uomRepo.GetByID(ctx, id); err != nil {
			return translate("check unit", "unit of measure", id, err)
		}
	}
	return nil
}

func (s *itemService) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}

	item.SKU = strings.TrimSpace(item.SKU)
	if item.SKU == "" {
		item.SKU = models.GenerateSKU()
	}
	now := time.Now().UTC()
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return common.NewPersistenceError("create item", err)
	}

	s.invalidate(ctx, uuid.Nil)
	s.publisher.Publish(events.New(events.ItemAdded, item.ID))
	return nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	if cached, err := s.cache.GetItem(ctx, id); err != nil {
		s.logger.Warn("item cache read failed", zap.String("item_id", id.String()), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	// Held across the read and the cache fill so a count committing in
	// between cannot leave a stale copy cached.
	unlock := s.locks.Lock(id)
	defer unlock()

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate("get item", "item", id, err)
	}

	if err := s.cache.SetItem(ctx, item, itemCacheTTL); err != nil {
		s.logger.Warn("item cache write failed", zap.String("item_id", id.String()), zap.Error(err))
	}
	return item, nil
}

// Update rewrites the item's fields. Count history is never modified here.
// It is serialized with counts on the same item.
func (s *itemService) Update(ctx context.Context, item *models.InventoryItem) error {
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}
	item.SKU = strings.TrimSpace(item.SKU)
	if item.SKU == "" {
		return common.NewValidationError("sku", "sku cannot be cleared")
	}

	unlock := s.locks.Lock(item.ID)
	defer unlock()

	item.UpdatedAt = time.Now().UTC()
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return translate("update item", "item", item.ID, err)
	}

	s.invalidate(ctx, item.ID)
	s.publisher.Publish(events.New(events.ItemUpdated, item.ID))
	return nil
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return translate("delete item", "item", id, err)
	}

	s.invalidate(ctx, id)
	s.publisher.Publish(events.New(events.ItemDeleted, id))
	return nil
}

func (s *itemService) List(ctx context.Context, filter models.ItemFilter) ([]*models.InventoryItem, error) {
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	switch filter.Status {
	case "", models.ItemStatusLowStock, models.ItemStatusOutOfStock:
	default:
		return nil, common.NewValidationError("status", "must be low_stock or out_of_stock")
	}

	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, common.NewPersistenceError("list items", err)
	}
	return items, nil
}

// RecordCount reconciles an item against a physical count: the current
// quantity is captured as the previous quantity, a ledger entry is appended
// and the item takes the counted quantity. Counts on the same item are
// serialized.
func (s *itemService) RecordCount(ctx context.Context, itemID uuid.UUID, input models.RecordCountInput) (*models.CountAdjustment, error) {
	if !finite(input.CountedQuantity) || input.CountedQuantity < 0 {
		return nil, common.NewValidationError("counted_quantity", "must be a non-negative number")
	}
	reason := strings.TrimSpace(input.AdjustmentReason)
	if reason == "" {
		return nil, common.NewValidationError("adjustment_reason", "adjustment reason is required")
	}

	countedBy := strings.TrimSpace(input.CountedBy)
	if countedBy == "" {
		if userID, ok := common.GetUserIDFromContext(ctx); ok && userID != "" {
			countedBy = userID
		} else {
			countedBy = models.DefaultCountedBy
		}
	}

	unlock := s.locks.Lock(itemID)
	defer unlock()

	adj := &models.CountAdjustment{
		ID:               uuid.New(),
		ItemID:           itemID,
		CountedQuantity:  input.CountedQuantity,
		AdjustmentReason: reason,
		Notes:            input.Notes,
		CountDate:        time.Now().UTC(),
		CountedBy:        countedBy,
	}
	if _, err := s.itemRepo.RecordCount(ctx, adj); err != nil {
		return nil, translate("record count", "item", itemID, err)
	}

	s.logger.Info("count recorded",
		zap.String("item_id", itemID.String()),
		zap.Float64("previous_quantity", adj.PreviousQuantity),
		zap.Float64("counted_quantity", adj.CountedQuantity),
		zap.String("adjustment_type", string(adj.AdjustmentType())))

	s.invalidate(ctx, itemID)
	s.publisher.Publish(events.New(events.InventoryCountCompleted, itemID))
	return adj, nil
}

// History returns the item's count ledger, newest first.
func (s *itemService) History(ctx context.Context, itemID uuid.UUID) ([]*models.CountAdjustment, error) {
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, translate("get item", "item", itemID, err)
	}
	adjustments, err := s.adjustmentRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, common.NewPersistenceError("list count history", err)
	}
	return adjustments, nil
}

// invalidate drops the cached item, if any, and the dashboard.
func (s *itemService) invalidate(ctx context.Context, itemID uuid.UUID) {
	if itemID != uuid.Nil {
		if err := s.cache.DeleteItem(ctx, itemID); err != nil {
			s.logger.Warn("item cache invalidation failed", zap.String("item_id", itemID.String()), zap.Error(err))
		}
	}
	if err := s.cache.DeleteDashboard(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
