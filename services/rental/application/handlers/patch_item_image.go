package handlers

import (
	"net/http"

	"github.com/ghuser/equiprent/pkg/auth"
	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/logger"
	pkgvalidator "github.com/ghuser/equiprent/pkg/validator"
	appsvcs "github.com/ghuser/equiprent/services/rental/application/services"
)

// UpdateImageRequest is the request body for PATCH /items/{id}/image.
// Presence is checked by the service so a blank path gets the catalog's
// own message.
type UpdateImageRequest struct {
	ImagePath string `json:"image_path" validate:"max=1024" example:"images/mixer.jpg"`
} // @name UpdateImageRequest

// PatchItemImageHandler handles PATCH /items/{id}/image requests.
type PatchItemImageHandler struct {
	svc        *appsvcs.Services
	log        logger.Logger
	production bool
}

func NewPatchItemImageHandler(svc *appsvcs.Services, log logger.Logger, production bool) *PatchItemImageHandler {
	return &PatchItemImageHandler{svc: svc, log: log, production: production}
}

// Execute sets the item's image reference.
//
//	@Summary	Set item image
//	@Tags		items
//	@Accept		json
//	@Param		id		path	int					true	"Item ID"
//	@Param		request	body	UpdateImageRequest	true	"Image reference"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/image [patch]
func (h *PatchItemImageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateImageRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Catalog.UpdateImagePath(r.Context(), id, req.ImagePath); err != nil {
		writeError(w, r, h.log, h.production, err)
		return
	}

	if operatorID, err := auth.OperatorIDFromCtx(r.Context()); err == nil {
		h.log.InfoContext(r.Context(), "item image changed", "item_id", id, "operator_id", operatorID)
	}
	httpx.NoContent(w)
}
