package handlers

import (
	"net/http"

	"github.com/ghuser/equiprent/pkg/httpx"
	"github.com/ghuser/equiprent/pkg/logger"
	appsvcs "github.com/ghuser/equiprent/services/rental/application/services"
)

// GetItemsHandler handles GET /items and GET /items/{id}.
type GetItemsHandler struct {
	svc        *appsvcs.Services
	log        logger.Logger
	production bool
}

func NewGetItemsHandler(svc *appsvcs.Services, log logger.Logger, production bool) *GetItemsHandler {
	return &GetItemsHandler{svc: svc, log: log, production: production}
}

// List returns the catalog.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Success	200	{array}		ItemResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/items [get]
func (h *GetItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Catalog.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, h.production, err)
		return
	}
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *GetItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, h.production, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
