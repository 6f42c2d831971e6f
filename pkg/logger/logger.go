package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/equiprent/pkg/config"
)

// Logger is the project-wide logging interface. The concrete slogLogger embeds
// *slog.Logger, so every slog method is available on it.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	// With returns a new Logger with the given key-value pairs bound as attributes.
	With(args ...any) Logger
	// ToSlog returns the underlying *slog.Logger for third-party libraries.
	ToSlog() *slog.Logger
}

// New returns a Logger writing JSON to stdout at cfg.LogLevel. Every record
// carries the service name; trace_id, span_id and request_id are added from
// context automatically.
func New(cfg *config.Config) Logger {
	l := NewWithWriter(os.Stdout, cfg.LogLevel)
	if cfg.ServiceName != "" {
		l = l.With("service", cfg.ServiceName)
	}
	return l
}

// NewWithWriter returns a Logger writing JSON to w. Used by tests and tools
// that need to capture output.
func NewWithWriter(w io.Writer, level string) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	return &slogLogger{Logger: slog.New(&traceHandler{slog.NewJSONHandler(w, opts)})}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return NewWithWriter(io.Discard, "error")
}

type slogLogger struct {
	*slog.Logger
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{Logger: l.Logger.With(args...)}
}

func (l *slogLogger) ToSlog() *slog.Logger {
	return l.Logger
}

// traceHandler decorates records with the active OTel span and chi request ID.
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if id := middleware.GetReqID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{h.Handler.WithGroup(name)}
}

// Middleware logs one line per request. The route pattern is logged instead
// of the raw path when chi resolved one, so /items/7 and /items/8 group together.
func Middleware(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if pattern := rc.RoutePattern(); pattern != "" {
					args = append(args, "route", pattern)
				}
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.ErrorContext(r.Context(), "request", args...)
			case status >= http.StatusBadRequest:
				log.WarnContext(r.Context(), "request", args...)
			default:
				log.InfoContext(r.Context(), "request", args...)
			}
		})
	}
}

// Recovery turns a panic into a logged 500.
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.ErrorContext(r.Context(), "panic recovered",
						"error", rec,
						"stack", string(debug.Stack()),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
