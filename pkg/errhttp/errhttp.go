// Package errhttp maps domain sentinel errors to HTTP status codes and
// client-safe messages. Add a case to classify for each new sentinel.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/equiprent/pkg/httpx"
	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
)

// WriteError maps err to a status code and writes {"message": ...}.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Store detail never reaches the body; callers log err itself. Unmapped
// errors go through httpx.SafeError, so only production hides their text.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status, msg := classify(err, isProduction)
	httpx.JSONError(w, status, msg)
}

// Status returns the HTTP status WriteError would use for err.
func Status(err error) int {
	status, _ := classify(err, true)
	return status
}

func classify(err error, isProduction bool) (int, string) {
	var ve *rentaldomain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error() // 400
	case errors.Is(err, rentaldomain.ErrInvalidReservation):
		return http.StatusBadRequest, "Invalid reservation." // 400
	case errors.Is(err, rentaldomain.ErrInvalidImagePath):
		return http.StatusBadRequest, "image_path is required." // 400
	case errors.Is(err, rentaldomain.ErrItemNotFound):
		return http.StatusNotFound, "Item not found." // 404
	case errors.Is(err, rentaldomain.ErrReservationOverlap):
		return http.StatusConflict, "Dates overlap an existing reservation." // 409
	case errors.Is(err, rentaldomain.ErrStoreUnavailable):
		return http.StatusBadGateway, "Reservation store is unavailable." // 502
	case errors.Is(err, rentaldomain.ErrAdmissionUnavailable):
		return http.StatusServiceUnavailable, "Item is busy, retry shortly." // 503
	default:
		return http.StatusInternalServerError, httpx.SafeError(err, http.StatusInternalServerError, isProduction) // 500
	}
}
