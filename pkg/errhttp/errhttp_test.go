package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	rentaldomain "github.com/ghuser/equiprent/services/rental/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", rentaldomain.Invalid("renter_email", "is required"), http.StatusBadRequest},
		{"bare ErrInvalidReservation", rentaldomain.ErrInvalidReservation, http.StatusBadRequest},
		{"ErrInvalidImagePath", rentaldomain.ErrInvalidImagePath, http.StatusBadRequest},
		{"ErrItemNotFound", rentaldomain.ErrItemNotFound, http.StatusNotFound},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", rentaldomain.ErrItemNotFound), http.StatusNotFound},
		{"ErrReservationOverlap", rentaldomain.ErrReservationOverlap, http.StatusConflict},
		{"ErrStoreUnavailable", fmt.Errorf("%w: dial tcp", rentaldomain.ErrStoreUnavailable), http.StatusBadGateway},
		{"ErrAdmissionUnavailable", rentaldomain.ErrAdmissionUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, true)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := Status(tt.err); got != tt.wantStatus {
				t.Fatalf("Status() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestWriteError_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{rentaldomain.Invalid("end_date", "must be on or after start_date"), "end_date must be on or after start_date"},
		{rentaldomain.ErrItemNotFound, "Item not found."},
		{rentaldomain.ErrReservationOverlap, "Dates overlap an existing reservation."},
		{rentaldomain.ErrInvalidImagePath, "image_path is required."},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		WriteError(w, tt.err, true)

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response body is not valid JSON: %v", err)
		}
		if body["message"] != tt.want {
			t.Errorf("message = %q, want %q", body["message"], tt.want)
		}
	}
}

func TestWriteError_StoreDetailNotLeaked(t *testing.T) {
	err := fmt.Errorf("%w: failed to connect to `user=rental host=db.internal`", rentaldomain.ErrStoreUnavailable)
	w := httptest.NewRecorder()
	WriteError(w, err, false)

	if strings.Contains(w.Body.String(), "db.internal") || strings.Contains(w.Body.String(), "rental") {
		t.Fatalf("driver detail leaked: %s", w.Body.String())
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, rentaldomain.ErrItemNotFound, true)

	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestWriteError_UnmappedDetailOnlyOutsideProduction(t *testing.T) {
	err := errors.New("decode cached item: unexpected EOF")
	tests := []struct {
		name       string
		production bool
		want       string
	}{
		{"production", true, "Internal Server Error"},
		{"development", false, err.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, err, tt.production)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if body["message"] != tt.want {
				t.Errorf("message = %q, want %q", body["message"], tt.want)
			}
		})
	}
}
