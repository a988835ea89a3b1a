package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "stockroom:"

type CacheService interface {
	// Item caching
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.InventoryItem, error)
	SetItem(ctx context.Context, item *models.InventoryItem, ttl time.Duration) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// Dashboard caching
	GetDashboard(ctx context.Context) (*models.DashboardStats, error)
	SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error
	DeleteDashboard(ctx context.Context) error

	// Cache invalidation
	InvalidateAllCache(ctx context.Context) error
}

type redisCacheService struct {
	client redis.Cmdable
}

// NewRedisClient connects to addr, which may carry a redis:// or rediss://
// scheme. A failed ping is logged and otherwise ignored; the cache degrades to
// misses until Redis is reachable.
func NewRedisClient(addr, password string, db int, logger *zap.Logger) *redis.Client {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		logger.Debug("redis connection established", zap.String("addr", parsedAddr))
	}
	return client
}

func NewRedisCacheService(client redis.Cmdable) CacheService {
	return &redisCacheService{client: client}
}

func itemKey(itemID uuid.UUID) string {
	return fmt.Sprintf(keyPrefix+"item:%s", itemID.String())
}

const dashboardKey = keyPrefix + "dashboard"

func (r *redisCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.InventoryItem, error) {
	data, err := r.client.Get(ctx, itemKey(itemID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.InventoryItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetItem(ctx context.Context, item *models.InventoryItem, ttl time.Duration) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, itemKey(item.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.client.Del(ctx, itemKey(itemID)).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context) (*models.DashboardStats, error) {
	data, err := r.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, dashboardKey, data, ttl).Err()
}

func (r *redisCacheService) DeleteDashboard(ctx context.Context) error {
	return r.client.Del(ctx, dashboardKey).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
