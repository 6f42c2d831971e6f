package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/logger"
	"github.com/ghuser/equiprent/pkg/migrator"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/postgres"
)

// openPostgres connects to DATABASE_URL and applies the rental schema.
func openPostgres(t *testing.T) *database.Database {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	d, err := database.NewPool(ctx, url, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(d.Close)

	require.NoError(t, migrator.Up(ctx, d.DB(), goose.DialectPostgres, os.DirFS("../../../../../migrations/rental")))
	return d
}

func insertItem(t *testing.T, d *database.Database, name, price string) int64 {
	t.Helper()
	var id int64
	err := d.DB().QueryRowContext(context.Background(),
		`INSERT INTO rental.items (name, daily_price) VALUES ($1, $2) RETURNING id`, name, price,
	).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = d.DB().Exec(`DELETE FROM rental.reservations WHERE item_id = $1`, id)
		_, _ = d.DB().Exec(`DELETE FROM rental.items WHERE id = $1`, id)
	})
	return id
}

func booking(itemID int64, start, end string) models.NewReservation {
	return models.NewReservation{
		ItemID:      itemID,
		Range:       models.DateRange{Start: models.MustParseDate(start), End: models.MustParseDate(end)},
		RenterName:  "Dana",
		RenterEmail: "dana@example.com",
		TotalPrice:  decimal.RequireFromString("45.00"),
	}
}

func TestItemRepository_Integration(t *testing.T) {
	d := openPostgres(t)
	ctx := context.Background()
	repo := postgres.NewItemRepository(d)
	id := insertItem(t, d, "Tile saw", "15.00")

	item, err := repo.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tile saw", item.Name)
	assert.Equal(t, "15.00", item.DailyPrice.StringFixed(2))
	assert.Nil(t, item.ImagePath)

	require.NoError(t, repo.UpdateImagePath(ctx, id, "images/saw.jpg"))
	item, err = repo.GetItem(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, item.ImagePath)
	assert.Equal(t, "images/saw.jpg", *item.ImagePath)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, items)

	_, err = repo.GetItem(ctx, -1)
	assert.ErrorIs(t, err, rentaldomain.ErrItemNotFound)
	assert.ErrorIs(t, repo.UpdateImagePath(ctx, -1, "x.jpg"), rentaldomain.ErrItemNotFound)
}

func TestReservationRepository_Integration(t *testing.T) {
	d := openPostgres(t)
	ctx := context.Background()
	repo := postgres.NewReservationRepository(d, nil)
	id := insertItem(t, d, "Cement mixer", "20.00")

	res, err := repo.Insert(ctx, booking(id, "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	assert.Positive(t, res.ID)
	assert.False(t, res.CreatedAt.IsZero())

	_, err = repo.Insert(ctx, booking(id, "2025-03-01", "2025-03-05"))
	require.NoError(t, err)

	ranges, err := repo.ListRanges(ctx, id)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, "2025-03-01", ranges[0].Start.String())
	assert.Equal(t, "2025-03-10", ranges[1].Start.String())

	t.Run("exclusion constraint", func(t *testing.T) {
		_, err := repo.Insert(ctx, booking(id, "2025-03-12", "2025-03-14"))
		assert.ErrorIs(t, err, rentaldomain.ErrReservationOverlap)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := repo.Insert(ctx, booking(-1, "2025-03-12", "2025-03-14"))
		assert.ErrorIs(t, err, rentaldomain.ErrItemNotFound)
	})

	t.Run("no reservations", func(t *testing.T) {
		ranges, err := repo.ListRanges(ctx, -1)
		require.NoError(t, err)
		assert.Empty(t, ranges)
	})
}
