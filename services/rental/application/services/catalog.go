package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ghuser/equiprent/pkg/cache"
	"github.com/ghuser/equiprent/pkg/logger"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
)

// CatalogService serves item reads and the image path update.
// Reads are served from Redis when available. Admission never reads
// through here; it prices from the repository.
type CatalogService struct {
	repo  repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
}

// NewCatalogService returns a CatalogService. itemCache may be nil.
func NewCatalogService(repo repositories.ItemRepository, itemCache ItemCache, log logger.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: itemCache, log: log}
}

// List returns every item ordered by id, never nil.
func (s *CatalogService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	return items, nil
}

// Get retrieves an item using a read-through cache:
//  1. Check Redis first.
//  2. On a miss (or cache error), query the store.
//  3. Warm the cache with the store result.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		switch {
		case err == nil:
			if item, ok := fromCachedItem(cached); ok {
				return item, nil
			}
			s.log.WarnContext(ctx, "discarding malformed item cache entry", "item_id", id)
		case !errors.Is(err, redis.Nil):
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, toCachedItem(item)); err != nil {
			s.log.WarnContext(ctx, "item cache write failed", "item_id", id, "error", err)
		}
	}
	return item, nil
}

// UpdateImagePath records a new image reference for the item. The path is
// trimmed; an empty result is ErrInvalidImagePath.
func (s *CatalogService) UpdateImagePath(ctx context.Context, id int64, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return rentaldomain.ErrInvalidImagePath
	}
	if err := s.repo.UpdateImagePath(ctx, id, path); err != nil {
		return fmt.Errorf("update image path: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(context.WithoutCancel(ctx), id); err != nil {
			s.log.WarnContext(ctx, "item cache eviction failed", "item_id", id, "error", err)
		}
	}
	s.log.InfoContext(ctx, "item image updated", "item_id", id)
	return nil
}

func toCachedItem(item *models.Item) *cache.CachedItem {
	return &cache.CachedItem{
		ID:          item.ID,
		Name:        item.Name,
		DailyPrice:  item.DailyPrice.String(),
		Category:    item.Category,
		Description: item.Description,
		ImagePath:   item.ImagePath,
		CreatedAt:   item.CreatedAt,
	}
}

func fromCachedItem(c *cache.CachedItem) (*models.Item, bool) {
	price, err := decimal.NewFromString(c.DailyPrice)
	if err != nil {
		return nil, false
	}
	return &models.Item{
		ID:          c.ID,
		Name:        c.Name,
		DailyPrice:  price,
		Category:    c.Category,
		Description: c.Description,
		ImagePath:   c.ImagePath,
		CreatedAt:   c.CreatedAt,
	}, true
}
