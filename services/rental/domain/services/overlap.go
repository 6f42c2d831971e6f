package services

import "github.com/ghuser/equiprent/services/rental/domain/models"

// Overlaps reports whether two inclusive ranges share at least one day.
// Ranges that touch on a boundary day overlap.
func Overlaps(a, b models.DateRange) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

// FirstOverlap returns the first range in existing that overlaps r.
func FirstOverlap(r models.DateRange, existing []models.DateRange) (models.DateRange, bool) {
	for _, e := range existing {
		if Overlaps(r, e) {
			return e, true
		}
	}
	return models.DateRange{}, false
}
