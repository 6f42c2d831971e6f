package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
)

// Postgres SQLSTATE codes the rental schema raises on purpose.
const (
	codeExclusionViolation  = "23P01" // reservations_no_overlap
	codeForeignKeyViolation = "23503" // reservations.item_id
	codeCheckViolation      = "23514"
)

// storeError translates a driver error into the domain vocabulary. Constraint
// backstops become their domain sentinels; everything else is wrapped with
// ErrStoreUnavailable.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeExclusionViolation:
			return rentaldomain.ErrReservationOverlap
		case codeForeignKeyViolation:
			return rentaldomain.ErrItemNotFound
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", rentaldomain.ErrInvalidReservation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %s: %v", rentaldomain.ErrStoreUnavailable, op, err)
}

// isDomainError reports whether err already speaks the domain vocabulary.
func isDomainError(err error) bool {
	return errors.Is(err, rentaldomain.ErrReservationOverlap) ||
		errors.Is(err, rentaldomain.ErrItemNotFound) ||
		errors.Is(err, rentaldomain.ErrInvalidReservation) ||
		errors.Is(err, rentaldomain.ErrStoreUnavailable)
}
