package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes v as JSON with the given status code. Encoding errors are
// dropped; the header has already been sent by then.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes {"message": message}.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// SafeError returns the error message for client responses.
// In production, 5xx messages are replaced with the status text.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
