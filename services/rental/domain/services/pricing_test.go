package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2025-03-10", "2025-03-10", 1},
		{"2025-03-10", "2025-03-12", 3},
		{"2025-02-27", "2025-03-01", 3},
		{"2024-02-27", "2024-03-01", 4},
		{"2025-03-12", "2025-03-10", 1}, // inverted is floored
		{"1500-01-01", "2000-01-01", 182622},
	}
	for _, tt := range tests {
		if got := InclusiveDays(rng(tt.start, tt.end)); got != tt.want {
			t.Errorf("%s..%s: got %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name       string
		rate       string
		start, end string
		want       string
	}{
		{"three days", "20.00", "2025-03-10", "2025-03-12", "60.00"},
		{"single day", "20.00", "2025-03-10", "2025-03-10", "20.00"},
		{"fractional rate", "15.00", "2025-03-10", "2025-03-12", "45.00"},
		{"cents stay exact", "0.10", "2025-03-01", "2025-03-03", "0.30"},
		{"free item", "0", "2025-03-01", "2025-03-31", "0.00"},
		{"multi-century range", "1.00", "1500-01-01", "2000-01-01", "182622.00"},
		{"whole calendar", "0.01", "0001-01-01", "9999-12-31", "36520.59"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(decimal.RequireFromString(tt.rate), rng(tt.start, tt.end))
			if got.StringFixed(2) != tt.want {
				t.Errorf("got %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}
