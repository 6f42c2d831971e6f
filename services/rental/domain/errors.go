package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the rental domain. Use errors.Is() to check these.
var (
	// ErrInvalidReservation indicates a booking request failed validation.
	// Returned wrapped in a *ValidationError that names the field.
	ErrInvalidReservation = errors.New("invalid reservation")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrReservationOverlap indicates the requested range intersects an
	// existing reservation for the same item.
	ErrReservationOverlap = errors.New("reservation overlaps an existing booking")

	// ErrStoreUnavailable wraps any failure of the persistence layer other
	// than a constraint conflict.
	ErrStoreUnavailable = errors.New("reservation store unavailable")

	// ErrAdmissionUnavailable indicates the per-item admission right could
	// not be obtained before the wait budget ran out.
	ErrAdmissionUnavailable = errors.New("admission unavailable")

	// ErrInvalidImagePath indicates an empty image reference.
	ErrInvalidImagePath = errors.New("invalid image path")
)

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidReservation }

// Invalid returns a *ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
