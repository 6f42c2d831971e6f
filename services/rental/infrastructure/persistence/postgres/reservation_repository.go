package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/events"
	domainevents "github.com/ghuser/equiprent/services/rental/domain/events"
	"github.com/ghuser/equiprent/services/rental/domain/models"
	"github.com/ghuser/equiprent/services/rental/domain/repositories"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/postgres/db"
)

var _ repositories.ReservationRepository = (*ReservationRepository)(nil)

// ReservationRepository implements repositories.ReservationRepository
// against PostgreSQL.
type ReservationRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewReservationRepository returns a ReservationRepository backed by the
// given pool and event bus. The bus is used to publish a
// ReservationCreatedEvent in the insert's transaction; nil disables it.
func NewReservationRepository(database *database.Database, bus *events.EventBus) *ReservationRepository {
	return &ReservationRepository{db: database, bus: bus}
}

func (r *ReservationRepository) ListRanges(ctx context.Context, itemID int64) ([]models.DateRange, error) {
	rows, err := db.New(r.db.DB()).ListReservationRanges(ctx, itemID)
	if err != nil {
		return nil, storeError("list reservation ranges", err)
	}
	ranges := make([]models.DateRange, len(rows))
	for i, row := range rows {
		ranges[i] = models.DateRange{Start: row.StartDate, End: row.EndDate}
	}
	return ranges, nil
}

// Insert stores res and publishes a ReservationCreatedEvent within the same
// transaction. The exclusion constraint maps to ErrReservationOverlap and the
// item foreign key to ErrItemNotFound.
func (r *ReservationRepository) Insert(ctx context.Context, res models.NewReservation) (*models.Reservation, error) {
	var stored *models.Reservation
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertReservation(ctx, db.InsertReservationParams{
			ItemID:      res.ItemID,
			StartDate:   res.Range.Start,
			EndDate:     res.Range.End,
			RenterName:  res.RenterName,
			RenterEmail: res.RenterEmail,
			TotalPrice:  res.TotalPrice,
		})
		if err != nil {
			return storeError("insert reservation", err)
		}
		stored = &models.Reservation{
			ID:          row.ID,
			ItemID:      res.ItemID,
			Range:       res.Range,
			RenterName:  res.RenterName,
			RenterEmail: res.RenterEmail,
			TotalPrice:  res.TotalPrice,
			CreatedAt:   row.CreatedAt.UTC(),
		}

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, stored); err != nil {
				return storeError("publish reservation created", err)
			}
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, storeError("insert reservation", err)
	}
	return stored, nil
}

func (r *ReservationRepository) publishCreated(ctx context.Context, tx *sql.Tx, res *models.Reservation) error {
	event := domainevents.NewReservationCreated(res)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return r.bus.PublishTx(ctx, tx, domainevents.TopicReservationCreated, msg)
}
