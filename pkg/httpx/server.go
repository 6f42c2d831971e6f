package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// ServerConfig holds the options for NewRouter. Zero values fall back to the
// defaults noted on each field.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
	// RequestsPerMinute per client IP. Default 100.
	RequestsPerMinute int
	// MaxBodyBytes caps request bodies. Default 1 MB.
	MaxBodyBytes int64
	// HandlerTimeout is the per-request deadline. Default 30 s.
	HandlerTimeout time.Duration
}

// Middlewares are the app-specific layers NewRouter mounts around the chi
// built-ins. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Otel     func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux pre-wired with the standard middleware stack.
//
// Middleware order (outermost first):
//  1. Recovery   catches panics re-raised by sentry
//  2. Sentry     captures panics, re-panics
//  3. RequestID  unique X-Request-Id per request
//  4. Otel       starts a server span per request
//  5. Logger     one line per request with trace_id/span_id
//  6. RealIP     sets RemoteAddr from X-Forwarded-For
//  7. RateLimit  RequestsPerMinute per IP
//  8. CORS
//  9. BodyLimit
//  10. Timeout
//  11. Security headers (CSP, HSTS, X-Frame-Options, Permissions-Policy)
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 100
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 30 * time.Second
	}

	sec := secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()",
		IsDevelopment:         cfg.IsDevelopment,
	})

	r := chi.NewRouter()
	for _, m := range []func(http.Handler) http.Handler{mw.Recovery, mw.Sentry} {
		if m != nil {
			r.Use(m)
		}
	}
	r.Use(middleware.RequestID)
	for _, m := range []func(http.Handler) http.Handler{mw.Otel, mw.Logger} {
		if m != nil {
			r.Use(m)
		}
	}
	r.Use(
		middleware.RealIP,
		httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.MaxBodyBytes),
		middleware.Timeout(cfg.HandlerTimeout),
		sec.Handler,
	)
	return r
}

// CORSMiddleware returns a CORS handler restricted to the given allowed origins.
// allowedOrigins is a comma-separated list (e.g. "https://rent.example.com,http://localhost:5174").
// Pass "*" to allow all origins (development only).
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit returns middleware that caps the request body at maxBytes.
// Reads past the limit fail; validator.ValidateRequest reports them as 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server with production-ready timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
