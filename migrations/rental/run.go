// Command rental applies the Postgres schema for the rental service:
//
//	go run ./migrations/rental
package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/equiprent/pkg/config"
	"github.com/ghuser/equiprent/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, MigrationsFS); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("rental migrations applied")
}
