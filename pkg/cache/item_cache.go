package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached catalog items.
	ItemCacheTTL = time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the catalog read model stored as a Redis hash. Optional
// fields are omitted from the hash when nil. DailyPrice is the decimal text
// so no precision is lost through the cache.
type CachedItem struct {
	ID          int64
	Name        string
	DailyPrice  string
	Category    *string
	Description *string
	ImagePath   *string
	CreatedAt   time.Time
}

// ItemCache reads and writes catalog entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get returns redis.Nil when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, itemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedItem{
		ID:          id,
		Name:        vals["name"],
		DailyPrice:  vals["daily_price"],
		Category:    optional(vals, "category"),
		Description: optional(vals, "description"),
		ImagePath:   optional(vals, "image_path"),
		CreatedAt:   createdAt,
	}, nil
}

// Set replaces the cached entry. The delete, write and TTL run in one
// MULTI so a reader never sees a half-written hash or stale optional fields.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := itemKey(item.ID)
	fields := []any{
		"id", strconv.FormatInt(item.ID, 10),
		"name", item.Name,
		"daily_price", item.DailyPrice,
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	for name, v := range map[string]*string{
		"category":    item.Category,
		"description": item.Description,
		"image_path":  item.ImagePath,
	} {
		if v != nil {
			fields = append(fields, name, *v)
		}
	}

	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields...)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID int64) error {
	if err := c.client.Client().Del(ctx, itemKey(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func itemKey(itemID int64) string {
	return fmt.Sprintf("%s:%d", itemCacheKeyPrefix, itemID)
}

func optional(vals map[string]string, field string) *string {
	if v, ok := vals[field]; ok {
		return &v
	}
	return nil
}
