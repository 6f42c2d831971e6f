package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/equiprent/pkg/config"
)

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: 0.2,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware captures panics and re-panics so the outer Recovery
// middleware still writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
}

// CaptureError reports err on the request's hub, falling back to the global
// hub outside a request. A no-op when Sentry was never initialized.
func CaptureError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
