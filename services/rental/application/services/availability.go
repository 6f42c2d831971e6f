package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/equiprent/pkg/cache"
	"github.com/ghuser/equiprent/pkg/logger"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
)

// AvailabilityService builds the booked-ranges view of an item.
type AvailabilityService struct {
	reservations repositories.ReservationRepository
	cache        RangesCache
	log          logger.Logger
}

// NewAvailabilityService returns an AvailabilityService. rangesCache may be nil.
func NewAvailabilityService(reservations repositories.ReservationRepository, rangesCache RangesCache, log logger.Logger) *AvailabilityService {
	return &AvailabilityService{reservations: reservations, cache: rangesCache, log: log}
}

// BookedRanges returns the item's reservations ordered by start, then end.
// An item with no reservations, known or not, yields an empty non-nil slice.
//
// Reads go through the cache when one is configured:
//  1. Check Redis first.
//  2. On a miss (or cache error), note the cache generation, then query the store.
//  3. Warm the cache with the store result unless Book evicted in between.
func (s *AvailabilityService) BookedRanges(ctx context.Context, itemID int64) ([]models.DateRange, error) {
	warm := s.cache != nil
	var gen int64
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, itemID)
		switch {
		case err == nil:
			if ranges, ok := fromCachedRanges(cached); ok {
				return ranges, nil
			}
			s.log.WarnContext(ctx, "discarding malformed booked ranges cache entry", "item_id", itemID)
		case !errors.Is(err, redis.Nil):
			s.log.WarnContext(ctx, "booked ranges cache read failed", "item_id", itemID, "error", err)
		}

		// Must be read before the store query; see cache.RangesCache.
		if gen, err = s.cache.Generation(ctx, itemID); err != nil {
			s.log.WarnContext(ctx, "booked ranges cache generation read failed", "item_id", itemID, "error", err)
			warm = false
		}
	}

	ranges, err := s.reservations.ListRanges(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list booked ranges: %w", err)
	}
	if ranges == nil {
		ranges = []models.DateRange{}
	}

	if warm {
		stored, err := s.cache.Set(ctx, itemID, gen, toCachedRanges(ranges))
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "booked ranges cache write failed", "item_id", itemID, "error", err)
		case !stored:
			s.log.DebugContext(ctx, "skipped stale booked ranges cache write", "item_id", itemID)
		}
	}
	return ranges, nil
}

func toCachedRanges(ranges []models.DateRange) []cache.CachedRange {
	out := make([]cache.CachedRange, len(ranges))
	for i, r := range ranges {
		out[i] = cache.CachedRange{Start: r.Start.String(), End: r.End.String()}
	}
	return out
}

func fromCachedRanges(cached []cache.CachedRange) ([]models.DateRange, bool) {
	out := make([]models.DateRange, len(cached))
	for i, c := range cached {
		start, err := models.ParseDate(c.Start)
		if err != nil {
			return nil, false
		}
		end, err := models.ParseDate(c.End)
		if err != nil {
			return nil, false
		}
		out[i] = models.DateRange{Start: start, End: end}
	}
	return out, true
}
