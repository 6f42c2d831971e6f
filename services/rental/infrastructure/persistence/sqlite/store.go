// Package sqlite is the single-node reservation store. The schema mirrors the
// Postgres one: a trigger plays the part of the exclusion constraint, and
// dates and money are stored as canonical text so they sort and compare
// lexically.
package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/migrator"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// overlapMessage is raised by the reservations_no_overlap trigger.
const overlapMessage = "reservation_overlap"

// Migrate applies the embedded schema to d.
func Migrate(ctx context.Context, d *database.Database) error {
	files, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("sqlite migrations: %w", err)
	}
	return migrator.Up(ctx, d.DB(), goose.DialectSQLite3, files)
}

// storeError translates a driver error into the domain vocabulary.
func storeError(op string, err error) error {
	var sqlErr *moderncsqlite.Error
	if errors.As(err, &sqlErr) {
		switch {
		case strings.Contains(sqlErr.Error(), overlapMessage):
			return rentaldomain.ErrReservationOverlap
		case sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
			strings.Contains(sqlErr.Error(), "FOREIGN KEY constraint failed"):
			return rentaldomain.ErrItemNotFound
		case sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK,
			strings.Contains(sqlErr.Error(), "CHECK constraint failed"):
			return fmt.Errorf("%w: check constraint", rentaldomain.ErrInvalidReservation)
		}
	}
	return fmt.Errorf("%w: %s: %v", rentaldomain.ErrStoreUnavailable, op, err)
}
