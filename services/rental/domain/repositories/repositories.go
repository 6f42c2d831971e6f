package repositories

import (
	"context"

	"github.com/ghuser/equiprent/services/rental/domain/models"
)

// ItemRepository is the persistence interface for the catalog.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// GetItem returns domain.ErrItemNotFound when no row has the id.
	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// ListItems returns every item ordered by id.
	ListItems(ctx context.Context) ([]*models.Item, error)

	// UpdateImagePath returns domain.ErrItemNotFound when no row was updated.
	UpdateImagePath(ctx context.Context, id int64, path string) error
}

// ReservationRepository is the persistence interface for reservations.
// Driver failures are wrapped with domain.ErrStoreUnavailable.
type ReservationRepository interface {
	// ListRanges returns the date ranges of every reservation for itemID,
	// ordered by start then end. An unknown item yields an empty slice.
	ListRanges(ctx context.Context, itemID int64) ([]models.DateRange, error)

	// Insert stores r and returns it with ID and CreatedAt assigned.
	// A store-level overlap conflict is domain.ErrReservationOverlap; a
	// missing item is domain.ErrItemNotFound.
	Insert(ctx context.Context, r models.NewReservation) (*models.Reservation, error)
}
