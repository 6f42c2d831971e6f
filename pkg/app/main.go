package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/equiprent/pkg/cache"
	"github.com/ghuser/equiprent/pkg/config"
	"github.com/ghuser/equiprent/pkg/database"
	"github.com/ghuser/equiprent/pkg/events"
	"github.com/ghuser/equiprent/pkg/lock"
	"github.com/ghuser/equiprent/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "reservation admitted", "item_id", id)
//	app.Logger.ErrorContext(ctx, "insert failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
//
// Optional fields are nil when the backing service is not configured:
// Redis without REDIS_URL, EventBus on SQLite, SessionStore in the worker.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Locker       lock.Locker
	SessionStore sessions.Store
}
