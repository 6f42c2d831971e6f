package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/lock"
	"github.com/ghuser/equiprent/pkg/logger"
	"github.com/ghuser/equiprent/services/rental/application/services"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/sqlite"
)

func request(itemID int64, start, end string) models.BookingRequest {
	return models.BookingRequest{
		ItemID:      itemID,
		Range:       models.DateRange{Start: models.MustParseDate(start), End: models.MustParseDate(end)},
		RenterName:  "Dana Ruiz",
		RenterEmail: "dana@example.com",
	}
}

func newController(store *memStore, ranges services.RangesCache) *services.AdmissionController {
	return services.NewAdmissionController(store, store, lock.NewKeyedMutex(), ranges, time.Second, logger.Discard())
}

func TestBook_Admitted(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	ranges := newMemRanges()
	stored, err := ranges.Set(context.Background(), 1, 0, nil)
	require.NoError(t, err)
	require.True(t, stored)

	res, err := newController(store, ranges).Book(context.Background(), request(1, "2025-04-01", "2025-04-03"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.ItemID)
	assert.Equal(t, "60.00", res.TotalPrice.StringFixed(2))
	assert.Equal(t, "2025-04-01", res.Range.Start.String())
	assert.Equal(t, "2025-04-03", res.Range.End.String())
	assert.False(t, ranges.has(1), "booked ranges cache should be evicted")
}

func TestBook_TrimsRenterFields(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	req := request(1, "2025-04-01", "2025-04-01")
	req.RenterName = "  Dana Ruiz "
	req.RenterEmail = " dana@example.com\t"

	res, err := newController(store, nil).Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Dana Ruiz", res.RenterName)
	assert.Equal(t, "dana@example.com", res.RenterEmail)
}

func TestBook_SingleDayPricesOneDay(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Pressure washer", "33.50")

	res, err := newController(store, nil).Book(context.Background(), request(1, "2025-04-01", "2025-04-01"))
	require.NoError(t, err)
	assert.Equal(t, "33.50", res.TotalPrice.StringFixed(2))
}

func TestBook_Overlap(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	c := newController(store, nil)
	ctx := context.Background()

	_, err := c.Book(ctx, request(1, "2025-04-01", "2025-04-03"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end string
	}{
		{"same range", "2025-04-01", "2025-04-03"},
		{"shared last day", "2025-04-03", "2025-04-05"},
		{"shared first day", "2025-03-28", "2025-04-01"},
		{"inside", "2025-04-02", "2025-04-02"},
		{"around", "2025-03-01", "2025-05-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Book(ctx, request(1, tt.start, tt.end))
			assert.ErrorIs(t, err, rentaldomain.ErrReservationOverlap)
		})
	}

	ranges, err := store.ListRanges(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, ranges, 1)
}

func TestBook_DisjointAdmitted(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	c := newController(store, nil)
	ctx := context.Background()

	_, err := c.Book(ctx, request(1, "2025-04-01", "2025-04-03"))
	require.NoError(t, err)
	_, err = c.Book(ctx, request(1, "2025-04-04", "2025-04-06"))
	require.NoError(t, err)

	view := services.NewAvailabilityService(store, nil, logger.Discard())
	ranges, err := view.BookedRanges(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, "2025-04-04", ranges[1].Start.String())
}

func TestBook_ValidationBeforeStore(t *testing.T) {
	tests := []struct {
		name  string
		req   func() models.BookingRequest
		field string
	}{
		{"end before start", func() models.BookingRequest { return request(1, "2025-04-03", "2025-04-01") }, "end_date"},
		{"blank name", func() models.BookingRequest {
			r := request(1, "2025-04-01", "2025-04-03")
			r.RenterName = "   "
			return r
		}, "renter_name"},
		{"bad email", func() models.BookingRequest {
			r := request(1, "2025-04-01", "2025-04-03")
			r.RenterEmail = "not-an-email"
			return r
		}, "renter_email"},
		{"non-positive item", func() models.BookingRequest { return request(0, "2025-04-01", "2025-04-03") }, "item_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.addItem(1, "Cement mixer", "20.00")

			_, err := newController(store, nil).Book(context.Background(), tt.req())
			require.ErrorIs(t, err, rentaldomain.ErrInvalidReservation)
			var verr *rentaldomain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, store.callCount(), "validation must not touch the store")
		})
	}
}

func TestBook_UnknownItem(t *testing.T) {
	store := newMemStore()
	_, err := newController(store, nil).Book(context.Background(), request(9, "2025-04-01", "2025-04-03"))
	assert.ErrorIs(t, err, rentaldomain.ErrItemNotFound)
}

func TestBook_StoreUnavailable(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	store.failWith = fmt.Errorf("%w: %v", rentaldomain.ErrStoreUnavailable, errBackend)

	_, err := newController(store, nil).Book(context.Background(), request(1, "2025-04-01", "2025-04-03"))
	assert.ErrorIs(t, err, rentaldomain.ErrStoreUnavailable)
	assert.Equal(t, services.OutcomeStoreUnavailable, services.OutcomeOf(err))
}

func TestBook_AdmissionTimeout(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	mu := lock.NewKeyedMutex()
	release, err := mu.Acquire(context.Background(), "item:1")
	require.NoError(t, err)
	defer release()

	c := services.NewAdmissionController(store, store, mu, nil, 30*time.Millisecond, logger.Discard())
	_, err = c.Book(context.Background(), request(1, "2025-04-01", "2025-04-03"))
	assert.ErrorIs(t, err, rentaldomain.ErrAdmissionUnavailable)
	assert.Zero(t, store.callCount())
}

func TestBook_OtherItemNotBlocked(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	store.addItem(2, "Tile saw", "15.00")
	mu := lock.NewKeyedMutex()
	release, err := mu.Acquire(context.Background(), "item:1")
	require.NoError(t, err)
	defer release()

	c := services.NewAdmissionController(store, store, mu, nil, 30*time.Millisecond, logger.Discard())
	_, err = c.Book(context.Background(), request(2, "2025-04-01", "2025-04-03"))
	assert.NoError(t, err)
}

func TestBook_CanceledWhileWaiting(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	mu := lock.NewKeyedMutex()
	release, err := mu.Acquire(context.Background(), "item:1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := services.NewAdmissionController(store, store, mu, nil, time.Second, logger.Discard())
	_, err = c.Book(ctx, request(1, "2025-04-01", "2025-04-03"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, services.OutcomeCanceled, services.OutcomeOf(err))
}

func TestBook_InsertSurvivesClientDisconnect(t *testing.T) {
	store := newMemStore()
	store.addItem(1, "Cement mixer", "20.00")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onGetItem = cancel

	res, err := newController(store, nil).Book(ctx, request(1, "2025-04-01", "2025-04-03"))
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.NoError(t, store.insertCtx)
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, services.OutcomeAdmitted},
		{rentaldomain.Invalid("end_date", "must not be before start_date"), services.OutcomeInvalid},
		{fmt.Errorf("get item: %w", rentaldomain.ErrItemNotFound), services.OutcomeItemNotFound},
		{rentaldomain.ErrReservationOverlap, services.OutcomeOverlap},
		{rentaldomain.ErrStoreUnavailable, services.OutcomeStoreUnavailable},
		{rentaldomain.ErrAdmissionUnavailable, services.OutcomeAdmissionUnavailable},
		{fmt.Errorf("wait: %w", context.Canceled), services.OutcomeCanceled},
		{errors.New("boom"), services.OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.OutcomeOf(tt.err), "%v", tt.err)
	}
}

// SQLite-backed scenarios exercise the real overlap backstop.

func openSQLite(t *testing.T) *database.Database {
	t.Helper()
	ctx := context.Background()
	d, err := database.OpenSQLite(ctx, ":memory:", logger.Discard())
	require.NoError(t, err)
	t.Cleanup(d.Close)
	require.NoError(t, sqlite.Migrate(ctx, d))
	return d
}

func seedItem(t *testing.T, d *database.Database, name, price string) int64 {
	t.Helper()
	res, err := d.DB().Exec(`INSERT INTO items (name, daily_price) VALUES (?, ?)`, name, price)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestBook_SQLiteScenario(t *testing.T) {
	d := openSQLite(t)
	id := seedItem(t, d, "Tile saw", "15.00")
	items := sqlite.NewItemRepository(d)
	reservations := sqlite.NewReservationRepository(d)
	c := services.NewAdmissionController(items, reservations, lock.NewKeyedMutex(), nil, time.Second, logger.Discard())
	view := services.NewAvailabilityService(reservations, nil, logger.Discard())
	ctx := context.Background()

	res, err := c.Book(ctx, request(id, "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	assert.Equal(t, "45.00", res.TotalPrice.StringFixed(2))

	_, err = c.Book(ctx, request(id, "2025-03-12", "2025-03-14"))
	assert.ErrorIs(t, err, rentaldomain.ErrReservationOverlap)

	_, err = c.Book(ctx, request(id+100, "2025-03-12", "2025-03-14"))
	assert.ErrorIs(t, err, rentaldomain.ErrItemNotFound)

	first, err := view.BookedRanges(ctx, id)
	require.NoError(t, err)
	second, err := view.BookedRanges(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "2025-03-10", first[0].Start.String())
	assert.Equal(t, "2025-03-12", first[0].End.String())
}

func TestBook_ConcurrentOverlappingRequests(t *testing.T) {
	lockers := map[string]func() lock.Locker{
		"keyed mutex":         func() lock.Locker { return lock.NewKeyedMutex() },
		"store backstop only": func() lock.Locker { return lock.Nop{} },
	}
	for name, newLocker := range lockers {
		t.Run(name, func(t *testing.T) {
			d := openSQLite(t)
			id := seedItem(t, d, "Cement mixer", "20.00")
			c := services.NewAdmissionController(
				sqlite.NewItemRepository(d),
				sqlite.NewReservationRepository(d),
				newLocker(), nil, 5*time.Second, logger.Discard(),
			)

			const n = 10
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				admitted  int
				conflicts int
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					// Every request covers 2025-05-05.
					start := fmt.Sprintf("2025-05-%02d", 1+i%5)
					_, err := c.Book(context.Background(), request(id, start, "2025-05-05"))
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						admitted++
					case errors.Is(err, rentaldomain.ErrReservationOverlap):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			wg.Wait()

			assert.Equal(t, 1, admitted)
			assert.Equal(t, n-1, conflicts)

			ranges, err := sqlite.NewReservationRepository(d).ListRanges(context.Background(), id)
			require.NoError(t, err)
			assert.Len(t, ranges, 1)
		})
	}
}
