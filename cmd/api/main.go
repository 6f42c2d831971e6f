package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/equiprent/docs/swagger"
	"github.com/ghuser/equiprent/pkg/app"
	"github.com/ghuser/equiprent/pkg/auth"
	"github.com/ghuser/equiprent/pkg/cache"
	"github.com/ghuser/equiprent/pkg/config"
	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/events"
	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/lock"
	"github.com/ghuser/equiprent/pkg/logger"
	"github.com/ghuser/equiprent/pkg/telemetry"
	rentalApi "github.com/ghuser/equiprent/services/rental/application/api"
	"github.com/ghuser/equiprent/services/rental/infrastructure/persistence/sqlite"
)

// @title			Equiprent API
// @version		1.0
// @description	Reservation admission for rental equipment: catalog, booked ranges and bookings.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open reservation store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer db.Close()
	log.Info("reservation store ready", "driver", db.Driver())

	appConfig := &app.Application{
		Config: cfg,
		Db:     db,
		Logger: log,
	}
	checks := httpx.HealthChecks{Database: db}

	// The outbox needs Postgres; SQLite deployments run without events.
	if db.Driver() == config.StorePostgres {
		eventBus, err := events.NewEventBus(db.DB(), events.Options{
			ConsumerGroup: cfg.ServiceName + "-api",
			Forwarder:     true,
		}, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck

		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		appConfig.EventBus = eventBus
		checks.EventBus = eventBus
	}

	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
		appConfig.Redis = redisClient
		checks.Redis = redisClient
	}

	appConfig.Locker = newLocker(cfg, appConfig.Redis)
	appConfig.SessionStore = newSessionStore(cfg, appConfig.Redis)
	log.Info("admission configured",
		"lock", cfg.AdmissionLock,
		"wait", cfg.AdmissionLockWait,
		"operator_sign_in", cfg.OperatorAPIKey != "",
	)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	registerRoutes(r, appConfig)

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes at the root. The paths are a
// public contract, so there is no /api prefix.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	rentalApi.RentalRoutes(r, a)
}

// openStore connects to the configured engine. SQLite applies its embedded
// schema on open; Postgres is migrated by ./migrations/rental.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*database.Database, error) {
	if cfg.StoreDriver != config.StoreSQLite {
		return database.NewPool(ctx, cfg.DatabaseURL, log)
	}
	db, err := database.OpenSQLite(ctx, cfg.SQLitePath, log)
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// newLocker returns the in-process mutex, with a Redis lease layered on top
// when ADMISSION_LOCK=redis so several API instances share one decision
// per item.
func newLocker(cfg *config.Config, rdb *cache.RedisClient) lock.Locker {
	local := lock.NewKeyedMutex()
	if cfg.AdmissionLock != config.LockRedis || rdb == nil {
		return local
	}
	return lock.Layered(local, lock.NewLease(rdb.Client(), lock.LeaseOptions{TTL: cfg.AdmissionLockTTL}))
}

// newSessionStore keeps operator sessions in Redis when available and in
// the encrypted cookie otherwise.
func newSessionStore(cfg *config.Config, rdb *cache.RedisClient) sessions.Store {
	secure := cfg.Environment == config.EnvProduction
	if rdb != nil {
		return auth.NewSessionStore(rdb.Client(), []byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), secure)
	}
	return auth.NewCookieSessionStore([]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), secure)
}
