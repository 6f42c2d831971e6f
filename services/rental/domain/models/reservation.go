package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is an admitted booking. Immutable once stored; TotalPrice
// is the price at booking time.
type Reservation struct {
	ID          int64
	ItemID      int64
	Range       DateRange
	RenterName  string
	RenterEmail string
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

// NewReservation is a priced, validated booking ready for insert.
type NewReservation struct {
	ItemID      int64
	Range       DateRange
	RenterName  string
	RenterEmail string
	TotalPrice  decimal.Decimal
}

// BookingRequest is a caller's ask to reserve ItemID for Range.
type BookingRequest struct {
	ItemID      int64
	Range       DateRange
	RenterName  string
	RenterEmail string
}
