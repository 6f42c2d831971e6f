package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/equiprent/services/rental/domain/models"
)

// TopicReservationCreated is the Watermill topic published when a
// reservation is admitted.
const TopicReservationCreated = "reservation.created"

// ReservationCreatedEvent is written to the outbox in the same transaction
// as the reservation row. The worker consumes it to evict the item's cached
// booked ranges.
type ReservationCreatedEvent struct {
	EventID       uuid.UUID   `json:"event_id"` // dedup key for consumers
	Version       int         `json:"version"`  // bump on breaking changes
	ReservationID int64       `json:"reservation_id"`
	ItemID        int64       `json:"item_id"`
	StartDate     models.Date `json:"start_date"`
	EndDate       models.Date `json:"end_date"`
	TotalPrice    string      `json:"total_price"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// NewReservationCreated builds the event for a stored reservation.
func NewReservationCreated(r *models.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ReservationID: r.ID,
		ItemID:        r.ItemID,
		StartDate:     r.Range.Start,
		EndDate:       r.Range.End,
		TotalPrice:    r.TotalPrice.StringFixed(2),
		OccurredAt:    time.Now().UTC(),
	}
}
