package sqlite

import (
	"context"
	"time"

	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
)

var _ repositories.ReservationRepository = (*ReservationRepository)(nil)

// ReservationRepository implements repositories.ReservationRepository on
// SQLite. No events are published; the outbox needs Postgres.
type ReservationRepository struct {
	db *database.Database
}

func NewReservationRepository(database *database.Database) *ReservationRepository {
	return &ReservationRepository{db: database}
}

func (r *ReservationRepository) ListRanges(ctx context.Context, itemID int64) ([]models.DateRange, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT start_date, end_date FROM reservations WHERE item_id = ? ORDER BY start_date, end_date`, itemID)
	if err != nil {
		return nil, storeError("list reservation ranges", err)
	}
	defer rows.Close()

	ranges := []models.DateRange{}
	for rows.Next() {
		var dr models.DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, storeError("scan reservation range", err)
		}
		ranges = append(ranges, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list reservation ranges", err)
	}
	return ranges, nil
}

// Insert stores res. The reservations_no_overlap trigger maps to
// ErrReservationOverlap and the item foreign key to ErrItemNotFound.
func (r *ReservationRepository) Insert(ctx context.Context, res models.NewReservation) (*models.Reservation, error) {
	createdAt := time.Now().UTC()
	var id int64
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO reservations (item_id, start_date, end_date, renter_name, renter_email, total_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		res.ItemID,
		res.Range.Start,
		res.Range.End,
		res.RenterName,
		res.RenterEmail,
		res.TotalPrice.StringFixed(2),
		formatTimestamp(createdAt),
	).Scan(&id)
	if err != nil {
		return nil, storeError("insert reservation", err)
	}
	return &models.Reservation{
		ID:          id,
		ItemID:      res.ItemID,
		Range:       res.Range,
		RenterName:  res.RenterName,
		RenterEmail: res.RenterEmail,
		TotalPrice:  res.TotalPrice,
		CreatedAt:   createdAt,
	}, nil
}
