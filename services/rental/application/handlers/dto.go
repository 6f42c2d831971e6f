package handlers

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/equiprent/services/rental/domain/models"
)

// ReservationResponse is returned on successful admission.
type ReservationResponse struct {
	ID          int64       `json:"id"           example:"17"`
	ItemID      int64       `json:"item_id"      example:"1"`
	StartDate   models.Date `json:"start_date"   example:"2025-03-10" swaggertype:"string" format:"date"`
	EndDate     models.Date `json:"end_date"     example:"2025-03-12" swaggertype:"string" format:"date"`
	RenterName  string      `json:"renter_name"  example:"Dana Ruiz"`
	RenterEmail string      `json:"renter_email" example:"dana@example.com"`
	TotalPrice  json.Number `json:"total_price"  example:"45.00" swaggertype:"number"`
	CreatedAt   time.Time   `json:"created_at"   example:"2025-03-01T09:30:00Z"`
} // @name ReservationResponse

// BookedRangeResponse is one reserved span, both ends inclusive.
type BookedRangeResponse struct {
	StartDate models.Date `json:"start_date" example:"2025-03-10" swaggertype:"string" format:"date"`
	EndDate   models.Date `json:"end_date"   example:"2025-03-12" swaggertype:"string" format:"date"`
} // @name BookedRangeResponse

// ItemResponse is the catalog view of an item.
type ItemResponse struct {
	ID          int64       `json:"id"          example:"1"`
	Name        string      `json:"name"        example:"Cement mixer"`
	DailyPrice  json.Number `json:"daily_price" example:"20.00" swaggertype:"number"`
	Category    *string     `json:"category"    example:"Concrete"`
	Description *string     `json:"description" example:"Electric, 140 L drum"`
	ImagePath   *string     `json:"image_path"  example:"images/mixer.jpg"`
	CreatedAt   time.Time   `json:"created_at"  example:"2025-01-15T10:30:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Message string            `json:"message"          example:"Dates overlap an existing reservation."`
	Fields  map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// money renders d as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		ItemID:      r.ItemID,
		StartDate:   r.Range.Start,
		EndDate:     r.Range.End,
		RenterName:  r.RenterName,
		RenterEmail: r.RenterEmail,
		TotalPrice:  money(r.TotalPrice),
		CreatedAt:   r.CreatedAt,
	}
}

func toItemResponse(i *models.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		DailyPrice:  money(i.DailyPrice),
		Category:    i.Category,
		Description: i.Description,
		ImagePath:   i.ImagePath,
		CreatedAt:   i.CreatedAt,
	}
}
