package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations runs all pending goose migrations from files against the
// Postgres database at dbURL.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Up(ctx, db, goose.DialectPostgres, files)
}

// Up applies every pending migration in the root of files. It uses a goose
// Provider rather than the package-level API so that concurrent callers (one
// in-memory SQLite database per test) do not share dialect or FS state.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, files fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	return nil
}
