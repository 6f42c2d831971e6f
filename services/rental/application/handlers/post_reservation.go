package handlers

import (
	"net/http"

	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/logger"
	pkgvalidator "github.com/ghuser/equiprent/pkg/validator"
	appsvcs "github.com/ghuser/equiprent/services/rental/application/services"
	"github.com/ghuser/equiprent/services/rental/domain/models"
)

// CreateReservationRequest is the request body for POST /reservations.
// Email syntax is checked after trimming, by the booking validator.
type CreateReservationRequest struct {
	ItemID      int64       `json:"item_id"      validate:"required,gt=0"              example:"1"`
	StartDate   models.Date `json:"start_date"   validate:"required"                   example:"2025-03-10" swaggertype:"string" format:"date"`
	EndDate     models.Date `json:"end_date"     validate:"required"                   example:"2025-03-12" swaggertype:"string" format:"date"`
	RenterName  string      `json:"renter_name"  validate:"required,notblank,max=200" example:"Dana Ruiz"`
	RenterEmail string      `json:"renter_email" validate:"required,notblank,max=254" example:"dana@example.com"`
} // @name CreateReservationRequest

// PostReservationHandler handles POST /reservations requests.
type PostReservationHandler struct {
	svc        *appsvcs.Services
	log        logger.Logger
	production bool
}

// NewPostReservationHandler returns a PostReservationHandler backed by the given services.
func NewPostReservationHandler(svc *appsvcs.Services, log logger.Logger, production bool) *PostReservationHandler {
	return &PostReservationHandler{svc: svc, log: log, production: production}
}

// Execute books an item for an inclusive date range.
//
//	@Summary		Reserve an item
//	@Description	Admits the booking when no existing reservation for the item shares a day with it. Price is daily rate times inclusive days.
//	@Tags			reservations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateReservationRequest	true	"Booking request"
//	@Success		201		{object}	ReservationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/reservations [post]
func (h *PostReservationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateReservationRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Admission.Book(r.Context(), models.BookingRequest{
		ItemID:      req.ItemID,
		Range:       models.DateRange{Start: req.StartDate, End: req.EndDate},
		RenterName:  req.RenterName,
		RenterEmail: req.RenterEmail,
	})
	if err != nil {
		writeError(w, r, h.log, h.production, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toReservationResponse(res))
}
