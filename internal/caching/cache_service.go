package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"menucraft/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Food item caching
	GetFoodItem(ctx context.Context, tenantID, itemID uuid.UUID) (*models.FoodItem, error)
	SetFoodItem(ctx context.Context, tenantID uuid.UUID, item *models.FoodItem, ttl time.Duration) error
	DeleteFoodItem(ctx context.Context, tenantID, itemID uuid.UUID) error

	// Category caching
	GetCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (*models.Category, error)
	SetCategory(ctx context.Context, tenantID uuid.UUID, category *models.Category, ttl time.Duration) error
	DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error

	// Menu list caching, keyed per branch
	GetMenus(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error)
	SetMenus(ctx context.Context, tenantID, branchID uuid.UUID, menus []*models.Menu, ttl time.Duration) error
	DeleteMenus(ctx context.Context, tenantID, branchID uuid.UUID) error

	// Cache invalidation
	InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both bare host:port and redis:// URLs
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetFoodItem(ctx context.Context, tenantID, itemID uuid.UUID) (*models.FoodItem, error) {
	key := fmt.Sprintf("menucraft:food_item:%s:%s", tenantID.String(), itemID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.FoodItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetFoodItem(ctx context.Context, tenantID uuid.UUID, item *models.FoodItem, ttl time.Duration) error {
	key := fmt.Sprintf("menucraft:food_item:%s:%s", tenantID.String(), item.ID.String())
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteFoodItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	key := fmt.Sprintf("menucraft:food_item:%s:%s", tenantID.String(), itemID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (*models.Category, error) {
	key := fmt.Sprintf("menucraft:category:%s:%s", tenantID.String(), categoryID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var category models.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *redisCacheService) SetCategory(ctx context.Context, tenantID uuid.UUID, category *models.Category, ttl time.Duration) error {
	key := fmt.Sprintf("menucraft:category:%s:%s", tenantID.String(), category.ID.String())
	data, err := json.Marshal(category)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	key := fmt.Sprintf("menucraft:category:%s:%s", tenantID.String(), categoryID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetMenus(ctx context.Context, tenantID, branchID uuid.UUID) ([]*models.Menu, error) {
	key := fmt.Sprintf("menucraft:menus:%s:%s", tenantID.String(), branchID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var menus []*models.Menu
	if err := json.Unmarshal(data, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *redisCacheService) SetMenus(ctx context.Context, tenantID, branchID uuid.UUID, menus []*models.Menu, ttl time.Duration) error {
	key := fmt.Sprintf("menucraft:menus:%s:%s", tenantID.String(), branchID.String())
	data, err := json.Marshal(menus)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteMenus(ctx context.Context, tenantID, branchID uuid.UUID) error {
	key := fmt.Sprintf("menucraft:menus:%s:%s", tenantID.String(), branchID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("menucraft:*:%s:*", tenantID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("menucraft:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
