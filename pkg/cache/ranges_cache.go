package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rangesCacheKeyPrefix = "ranges"

// CachedRange is one booked span, dates as YYYY-MM-DD.
type CachedRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// setIfCurrent writes KEYS[1] only while the generation at KEYS[2] still
// equals ARGV[1]. A missing generation key reads as 0.
var setIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// RangesCache holds the booked-ranges view per item as a JSON string.
// Key format: "ranges:{itemID}", generation at "ranges:{itemID}:gen".
//
// Every Delete bumps the generation. A reader takes Generation before it
// queries the store and passes it to Set, so a result read before an
// eviction is never written after it.
//
// Entries are advisory: admission never reads them.
type RangesCache struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRangesCache(r *RedisClient, ttl time.Duration) *RangesCache {
	return &RangesCache{client: r, ttl: ttl}
}

// Get returns redis.Nil on a miss. An empty slice is a valid hit.
func (c *RangesCache) Get(ctx context.Context, itemID int64) ([]CachedRange, error) {
	raw, err := c.client.Client().Get(ctx, rangesKey(itemID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var out []CachedRange
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return out, nil
}

// Generation returns the item's eviction counter, 0 if it was never evicted.
func (c *RangesCache) Generation(ctx context.Context, itemID int64) (int64, error) {
	gen, err := c.client.Client().Get(ctx, generationKey(itemID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Set stores ranges if the generation is still gen. It reports whether the
// entry was written; a stale write is skipped without error.
func (c *RangesCache) Set(ctx context.Context, itemID int64, gen int64, ranges []CachedRange) (bool, error) {
	if ranges == nil {
		ranges = []CachedRange{}
	}
	raw, err := json.Marshal(ranges)
	if err != nil {
		return false, fmt.Errorf("cache encode: %w", err)
	}
	keys := []string{rangesKey(itemID), generationKey(itemID)}
	stored, err := setIfCurrent.Run(ctx, c.client.Client(), keys, gen, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return stored == 1, nil
}

// Delete bumps the generation and evicts the entry in one transaction;
// evicting a missing key is not an error.
func (c *RangesCache) Delete(ctx context.Context, itemID int64) error {
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(itemID))
		pipe.Del(ctx, rangesKey(itemID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func rangesKey(itemID int64) string {
	return fmt.Sprintf("%s:%d", rangesCacheKeyPrefix, itemID)
}

func generationKey(itemID int64) string {
	return rangesKey(itemID) + ":gen"
}
