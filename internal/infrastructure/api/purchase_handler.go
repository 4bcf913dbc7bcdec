package api

import (
	"encoding/json"
	"net/http"

	app_service "nft-market-gateway/internal/application/service"
	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/infrastructure/logger"
)

// PurchaseHandler serves the purchase-eligibility gate
type PurchaseHandler struct {
	logger *logger.Logger
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(logger *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{logger: logger.WithComponent("purchase-handler")}
}

type eligibilityResponseBody struct {
	Prompt      app_service.GatePrompt `json:"prompt"`
	CanPurchase bool                   `json:"canPurchase"`
}

// Eligibility handles POST /api/purchase/eligibility. The gate holds no
// state of its own; the caller submits its session flags and gets the
// prompt and decision back.
func (h *PurchaseHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	var state app_service.GateState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeError(w, h.logger, &entity.InternalError{Message: "request body could not be decoded", Err: err})
		return
	}

	prompt, canPurchase := state.Evaluate()
	writeJSON(w, http.StatusOK, eligibilityResponseBody{
		Prompt:      prompt,
		CanPurchase: canPurchase,
	})
}
