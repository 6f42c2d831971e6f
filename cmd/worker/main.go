package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/equiprent/pkg/app"
	"github.com/ghuser/equiprent/pkg/cache"
	"github.com/ghuser/equiprent/pkg/config"
	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/events"
	"github.com/ghuser/equiprent/pkg/logger"
	"github.com/ghuser/equiprent/pkg/telemetry"
	rentalEvents "github.com/ghuser/equiprent/services/rental/domain/events"
)

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

	log := logger.New(cfg).With("process", "worker")

	if cfg.StoreDriver != config.StorePostgres {
		log.Error("worker requires STORE_DRIVER=postgres; events are not published on sqlite")
		os.Exit(1)
	}
	if cfg.RedisURL == "" {
		log.Error("worker requires REDIS_URL; it maintains the booked ranges cache")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), events.Options{ConsumerGroup: cfg.ServiceName + "-worker"}, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("shutting down worker...")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	ranges := cache.NewRangesCache(a.Redis, a.Config.BookedRangesCacheTTL)
	errCh, err := a.EventBus.Subscribe(ctx, rentalEvents.TopicReservationCreated, handleReservationCreated(ranges, a.Logger))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", rentalEvents.TopicReservationCreated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{rentalEvents.TopicReservationCreated})
	return nil
}

// rangesEvicter is the part of cache.RangesCache the handler needs.
type rangesEvicter interface {
	Delete(ctx context.Context, itemID int64) error
}

// handleReservationCreated returns a handler for reservation.created events.
// It evicts the item's booked ranges so readers on other instances see the
// new reservation. Eviction is idempotent, so redelivery is harmless; a
// Redis failure is returned so the bus retries.
func handleReservationCreated(ranges rangesEvicter, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt rentalEvents.ReservationCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			// A payload that cannot be decoded never will be; drop it.
			log.ErrorContext(ctx, "malformed reservation.created payload", "message_uuid", msg.UUID, "error", err)
			return nil
		}

		if err := ranges.Delete(ctx, evt.ItemID); err != nil {
			return fmt.Errorf("evict booked ranges for item %d: %w", evt.ItemID, err)
		}
		log.InfoContext(ctx, "booked ranges evicted",
			"item_id", evt.ItemID,
			"reservation_id", evt.ReservationID,
			"event_id", evt.EventID,
		)
		return nil
	}
}
