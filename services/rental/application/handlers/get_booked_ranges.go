package handlers

import (
	"net/http"

	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/logger"
	appsvcs "github.com/ghuser/equiprent/services/rental/application/services"
)

// GetBookedRangesHandler handles GET /items/{id}/booked-ranges requests.
type GetBookedRangesHandler struct {
	svc        *appsvcs.Services
	log        logger.Logger
	production bool
}

func NewGetBookedRangesHandler(svc *appsvcs.Services, log logger.Logger, production bool) *GetBookedRangesHandler {
	return &GetBookedRangesHandler{svc: svc, log: log, production: production}
}

// Execute lists the item's reserved ranges.
//
//	@Summary		Booked ranges
//	@Description	Reserved date ranges for the item, ordered by start date. Empty for an item without reservations.
//	@Tags			items
//	@Produce		json
//	@Param			id	path		int	true	"Item ID"
//	@Success		200	{array}		BookedRangeResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/items/{id}/booked-ranges [get]
func (h *GetBookedRangesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	ranges, err := h.svc.Availability.BookedRanges(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, h.production, err)
		return
	}

	out := make([]BookedRangeResponse, len(ranges))
	for i, rg := range ranges {
		out[i] = BookedRangeResponse{StartDate: rg.Start, EndDate: rg.End}
	}
	httpx.JSON(w, http.StatusOK, out)
}
