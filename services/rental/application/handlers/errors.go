package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/equiprent/pkg/errhttp"
	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/logger"
	"github.com/ghuser/equiprent/pkg/telemetry"
)

// writeError answers with the mapped status. Server-side failures are
// logged with the full error and reported to Sentry. Unexpected 500s show
// err's text outside production only.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, production bool, err error) {
	if status := errhttp.Status(err); status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", "status", status, "error", err)
		if status != http.StatusServiceUnavailable {
			telemetry.CaptureError(r.Context(), err)
		}
	}
	errhttp.WriteError(w, err, production)
}

// itemIDParam parses the {id} route parameter. It writes a 400 and returns
// false when the value is not a positive integer.
func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Item id must be a positive integer.")
		return 0, false
	}
	return id, true
}
