// Package services contains stateless domain services for the rental bounded
// context: the overlap predicate, pricing and booking validation. Nothing here
// touches a repository.
package services

import (
	"net/mail"
	"strings"

	"github.com/ghuser/equiprent/services/rental/domain"
	"github.com/ghuser/equiprent/services/rental/domain/models"
)

const (
	maxRenterNameLen  = 200
	maxRenterEmailLen = 254
)

// ValidateBooking checks a request before any repository access and returns
// it with renter fields trimmed. Failures are *domain.ValidationError.
//
// Rules:
//   - item_id > 0
//   - start_date and end_date set, end_date >= start_date
//   - renter_name non-blank, at most 200 characters
//   - renter_email non-blank, a single bare address
func ValidateBooking(req models.BookingRequest) (models.BookingRequest, error) {
	if req.ItemID <= 0 {
		return req, domain.Invalid("item_id", "must be a positive integer")
	}
	if req.Range.Start.IsZero() {
		return req, domain.Invalid("start_date", "is required")
	}
	if req.Range.End.IsZero() {
		return req, domain.Invalid("end_date", "is required")
	}
	if req.Range.End.Before(req.Range.Start) {
		return req, domain.Invalid("end_date", "must be on or after start_date")
	}

	req.RenterName = strings.TrimSpace(req.RenterName)
	req.RenterEmail = strings.TrimSpace(req.RenterEmail)

	if req.RenterName == "" {
		return req, domain.Invalid("renter_name", "is required")
	}
	if len([]rune(req.RenterName)) > maxRenterNameLen {
		return req, domain.Invalid("renter_name", "is too long")
	}
	if req.RenterEmail == "" {
		return req, domain.Invalid("renter_email", "is required")
	}
	if len(req.RenterEmail) > maxRenterEmailLen || !isBareAddress(req.RenterEmail) {
		return req, domain.Invalid("renter_email", "must be a valid email address")
	}
	return req, nil
}

// isBareAddress accepts "ann@example.com" but not "Ann <ann@example.com>".
func isBareAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}
