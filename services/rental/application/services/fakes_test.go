package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ghuser/equiprent/pkg/cache"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	domainsvcs "github.com/ghuser/equiprent/services/rental/domain/services"
)

// memStore is an in-memory ItemRepository and ReservationRepository that
// counts calls and enforces the overlap constraint like the real stores.
type memStore struct {
	mu       sync.Mutex
	items    map[int64]*models.Item
	res      []models.Reservation
	nextID   int64
	calls    int
	failWith error

	onGetItem    func()
	onListRanges func() // runs once, after the read and before ListRanges returns
	insertCtx    error // ctx.Err() seen by the last Insert
}

func newMemStore() *memStore {
	return &memStore{items: map[int64]*models.Item{}}
}

func (s *memStore) addItem(id int64, name, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = &models.Item{ID: id, Name: name, DailyPrice: decimal.RequireFromString(price)}
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *memStore) GetItem(_ context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	s.calls++
	item, ok := s.items[id]
	hook := s.onGetItem
	fail := s.failWith
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	if fail != nil {
		return nil, fail
	}
	if !ok {
		return nil, rentaldomain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *memStore) ListItems(context.Context) ([]*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []*models.Item
	for _, it := range s.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateImagePath(_ context.Context, id int64, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	item, ok := s.items[id]
	if !ok {
		return rentaldomain.ErrItemNotFound
	}
	item.ImagePath = &path
	return nil
}

func (s *memStore) ListRanges(_ context.Context, itemID int64) ([]models.DateRange, error) {
	out, err := s.listRanges(itemID)
	s.mu.Lock()
	hook := s.onListRanges
	s.onListRanges = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, err
}

func (s *memStore) listRanges(itemID int64) ([]models.DateRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []models.DateRange{}
	for _, r := range s.res {
		if r.ItemID == itemID {
			out = append(out, r.Range)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Start.Compare(out[j].Start); c != 0 {
			return c < 0
		}
		return out[i].End.Before(out[j].End)
	})
	return out, nil
}

func (s *memStore) Insert(ctx context.Context, n models.NewReservation) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.insertCtx = ctx.Err()
	if _, ok := s.items[n.ItemID]; !ok {
		return nil, rentaldomain.ErrItemNotFound
	}
	for _, r := range s.res {
		if r.ItemID == n.ItemID && domainsvcs.Overlaps(r.Range, n.Range) {
			return nil, rentaldomain.ErrReservationOverlap
		}
	}
	s.nextID++
	r := models.Reservation{
		ID:          s.nextID,
		ItemID:      n.ItemID,
		Range:       n.Range,
		RenterName:  n.RenterName,
		RenterEmail: n.RenterEmail,
		TotalPrice:  n.TotalPrice,
	}
	s.res = append(s.res, r)
	return &r, nil
}

// memRanges is a RangesCache backed by a map, with the same generation
// check as the Redis implementation.
type memRanges struct {
	mu      sync.Mutex
	entries map[int64][]cache.CachedRange
	gens    map[int64]int64
	getErr  error
	deletes int
}

func newMemRanges() *memRanges {
	return &memRanges{entries: map[int64][]cache.CachedRange{}, gens: map[int64]int64{}}
}

func (c *memRanges) Get(_ context.Context, id int64) ([]cache.CachedRange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.entries[id]
	if !ok {
		return nil, redis.Nil
	}
	return v, nil
}

func (c *memRanges) Generation(_ context.Context, id int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id], nil
}

func (c *memRanges) Set(_ context.Context, id int64, gen int64, ranges []cache.CachedRange) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[id] != gen {
		return false, nil
	}
	c.entries[id] = ranges
	return true, nil
}

func (c *memRanges) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	c.gens[id]++
	delete(c.entries, id)
	return nil
}

func (c *memRanges) has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

// memItems is an ItemCache backed by a map.
type memItems struct {
	mu      sync.Mutex
	entries map[int64]cache.CachedItem
}

func newMemItems() *memItems {
	return &memItems{entries: map[int64]cache.CachedItem{}}
}

func (c *memItems) Get(_ context.Context, id int64) (*cache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[id]
	if !ok {
		return nil, redis.Nil
	}
	return &v, nil
}

func (c *memItems) Set(_ context.Context, item *cache.CachedItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[item.ID] = *item
	return nil
}

func (c *memItems) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func (c *memItems) has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

var errBackend = errors.New("dial tcp 10.0.0.5:5432: connection refused")
