package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any dependency that can be pinged
// (database.Database, cache.RedisClient and events.EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks lists the dependencies probed by HealthHandler. A nil checker
// is reported as "disabled" and does not degrade the status; Redis and the
// event bus are optional in single-node SQLite deployments.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
}

// HealthHandler probes every configured checker with a 2 s budget and
// answers 503 when any of them fails.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		degraded := false
		probe := func(c HealthChecker) string {
			if c == nil {
				return "disabled"
			}
			if err := c.Ping(ctx); err != nil {
				degraded = true
				return "unreachable"
			}
			return "ok"
		}
		resp.Database = probe(checks.Database)
		resp.Redis = probe(checks.Redis)
		resp.EventBus = probe(checks.EventBus)

		status := http.StatusOK
		if degraded {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
