package services

import (
	"context"

	"github.com/ghuser/equiprent/pkg/cache"
)

// ItemCache is the slice of cache.ItemCache the catalog uses. Get must
// return redis.Nil on a miss.
type ItemCache interface {
	Get(ctx context.Context, itemID int64) (*cache.CachedItem, error)
	Set(ctx context.Context, item *cache.CachedItem) error
	Delete(ctx context.Context, itemID int64) error
}

// RangesCache is the slice of cache.RangesCache the availability view and
// admission use. Get must return redis.Nil on a miss. Delete advances the
// generation; Set must skip the write once the generation has moved past gen.
type RangesCache interface {
	Get(ctx context.Context, itemID int64) ([]cache.CachedRange, error)
	Generation(ctx context.Context, itemID int64) (int64, error)
	Set(ctx context.Context, itemID int64, gen int64, ranges []cache.CachedRange) (bool, error)
	Delete(ctx context.Context, itemID int64) error
}

var (
	_ ItemCache   = (*cache.ItemCache)(nil)
	_ RangesCache = (*cache.RangesCache)(nil)
)
