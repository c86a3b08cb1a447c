package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

type cacheRepository struct {
	client *redis.Client
}

var _ domain.CacheRepository = (*cacheRepository)(nil)

// NewCacheRepository creates a new Redis cache repository
func NewCacheRepository(client *redis.Client) *cacheRepository {
	return &cacheRepository{client: client}
}

// Cache keys
const (
	ActiveProductsKey = "catalog:products:active"
	VipLevelsKey      = "catalog:vip_levels"

	// TTL durations
	ProductCacheTTL  = 60 * time.Minute
	VipLevelCacheTTL = 60 * time.Minute
)

func (r *cacheRepository) CacheActiveProducts(products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	if err := r.client.Set(context.Background(), ActiveProductsKey, data, ProductCacheTTL).Err(); err != nil {
		logger.Error("Failed to cache active products", logger.ErrorField(err))
		return fmt.Errorf("failed to cache active products: %w", err)
	}

	logger.Debug("Active products cached",
		logger.Int("count", len(products)),
	)
	return nil
}

func (r *cacheRepository) GetActiveProducts() ([]*domain.Product, error) {
	data, err := r.client.Get(context.Background(), ActiveProductsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		logger.Error("Failed to get active products from cache", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to get active products from cache: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}
	return products, nil
}

func (r *cacheRepository) InvalidateProducts() error {
	if err := r.client.Del(context.Background(), ActiveProductsKey).Err(); err != nil {
		logger.Error("Failed to invalidate product cache", logger.ErrorField(err))
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

func (r *cacheRepository) CacheVipLevels(levels []*domain.VipLevel) error {
	data, err := json.Marshal(levels)
	if err != nil {
		return fmt.Errorf("failed to marshal vip levels: %w", err)
	}

	if err := r.client.Set(context.Background(), VipLevelsKey, data, VipLevelCacheTTL).Err(); err != nil {
		logger.Error("Failed to cache VIP levels", logger.ErrorField(err))
		return fmt.Errorf("failed to cache vip levels: %w", err)
	}
	return nil
}

func (r *cacheRepository) GetVipLevels() ([]*domain.VipLevel, error) {
	data, err := r.client.Get(context.Background(), VipLevelsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get vip levels from cache: %w", err)
	}

	var levels []*domain.VipLevel
	if err := json.Unmarshal([]byte(data), &levels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached vip levels: %w", err)
	}
	return levels, nil
}

func (r *cacheRepository) InvalidateVipLevels() error {
	if err := r.client.Del(context.Background(), VipLevelsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate vip level cache: %w", err)
	}
	return nil
}

// Ping reports cache connectivity for the readiness probe.
func (r *cacheRepository) Ping() error {
	return r.client.Ping(context.Background()).Err()
}
