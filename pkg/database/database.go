// Package database owns the *sql.DB handed to repositories and the event bus.
// Postgres goes through a pgxpool exposed as database/sql; SQLite uses the
// pure-Go modernc driver for single-node deployments and tests.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ghuser/equiprent/pkg/logger"
)

// Database wraps a *sql.DB with transaction helpers.
type Database struct {
	db     *sql.DB
	pool   *pgxpool.Pool // nil for SQLite
	driver string
}

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, databaseURL string, log logger.Logger) (*Database, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	d := &Database{db: stdlib.OpenDBFromPool(pool), pool: pool, driver: "postgres"}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		d.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Debug("postgres pool ready", "max_conns", poolCfg.MaxConns, "host", poolCfg.ConnConfig.Host)
	return d, nil
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
// Pass ":memory:" for a private in-memory database; each call gets its own.
//
// SQLite allows one writer at a time, so the handle is capped at a single
// connection. That also keeps an in-memory database alive for the lifetime
// of the handle.
func OpenSQLite(ctx context.Context, path string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	d := &Database{db: db, driver: "sqlite"}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	log.Debug("sqlite database ready", "path", path)
	return d, nil
}

func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" || path == "" {
		return "file::memory:?" + pragmas
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + pragmas + "&_pragma=journal_mode(WAL)"
}

// DB returns the underlying handle for query packages.
func (d *Database) DB() *sql.DB { return d.db }

// Driver reports "postgres" or "sqlite".
func (d *Database) Driver() string { return d.driver }

// Ping satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close releases the handle and, for Postgres, the pool behind it.
func (d *Database) Close() {
	_ = d.db.Close()
	if d.pool != nil {
		d.pool.Close()
	}
}

// WithTx runs fn inside a transaction. fn's error (or a panic) rolls back;
// otherwise the transaction commits.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
