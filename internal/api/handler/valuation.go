package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/penalties-go/internal/api/request"
	"github.com/mcoot/penalties-go/internal/api/response"
	"github.com/mcoot/penalties-go/internal/services/pricing"
)

// ValuationHandler handles player valuation endpoints
type ValuationHandler struct {
	pricingService *pricing.Service
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(pricingService *pricing.Service) *ValuationHandler {
	return &ValuationHandler{
		pricingService: pricingService,
	}
}

// Set handles PUT /api/v1/valuations/{player}
func (h *ValuationHandler) Set(w http.ResponseWriter, r *http.Request) {
	player := mux.Vars(r)["player"]

	var req request.SetValuationRequest
	if err := decodeRequest(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	valuation, err := h.pricingService.SetValuation(r.Context(), player, *req.Price)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ValuationFromModel(valuation))
}

// Get handles GET /api/v1/valuations/{player}
func (h *ValuationHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := mux.Vars(r)["player"]

	valuation, err := h.pricingService.GetValuation(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ValuationFromModel(valuation))
}
