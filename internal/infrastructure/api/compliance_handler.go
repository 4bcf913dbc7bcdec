package api

import (
	"encoding/json"
	"net/http"

	"nft-market-gateway/internal/domain/entity"
	domain_service "nft-market-gateway/internal/domain/service"
	"nft-market-gateway/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// ComplianceHandler serves the compliance screening endpoints
type ComplianceHandler struct {
	compliance domain_service.ComplianceService
	logger     *logger.Logger
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(compliance domain_service.ComplianceService, logger *logger.Logger) *ComplianceHandler {
	return &ComplianceHandler{
		compliance: compliance,
		logger:     logger.WithComponent("compliance-handler"),
	}
}

type screeningRequestBody struct {
	Address string `json:"address"`
}

type screeningResponseBody struct {
	Data *entity.ComplianceResult `json:"data"`
}

// Screen handles POST /api/compliance
func (h *ComplianceHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var body screeningRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, &entity.InternalError{Message: "request body could not be decoded", Err: err})
		return
	}

	result, err := h.compliance.ScreenAddress(r.Context(), body.Address)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, screeningResponseBody{Data: result})
}

// Liveness handles GET /api/compliance
func (h *ComplianceHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Compliance API is running"})
}

type pairRequestBody struct {
	SellerAddress string `json:"sellerAddress"`
	BuyerAddress  string `json:"buyerAddress"`
}

// screeningSlot is one side of a pair screening: a result or an error, never
// both.
type screeningSlot struct {
	Address string                   `json:"address"`
	Data    *entity.ComplianceResult `json:"data,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

type pairResponseBody struct {
	Seller screeningSlot `json:"seller"`
	Buyer  screeningSlot `json:"buyer"`
}

// ScreenPair handles POST /api/compliance/pair. Both sides are screened
// concurrently and reported independently; a partial failure is still a 200.
func (h *ComplianceHandler) ScreenPair(w http.ResponseWriter, r *http.Request) {
	var body pairRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, &entity.InternalError{Message: "request body could not be decoded", Err: err})
		return
	}

	report := h.compliance.ScreenPair(r.Context(), body.SellerAddress, body.BuyerAddress)

	h.logger.Debug("Completed pair screening",
		zap.Bool("seller_ok", report.Seller.Err == nil),
		zap.Bool("buyer_ok", report.Buyer.Err == nil))

	writeJSON(w, http.StatusOK, pairResponseBody{
		Seller: toSlot(report.Seller),
		Buyer:  toSlot(report.Buyer),
	})
}

func toSlot(outcome entity.ScreeningOutcome) screeningSlot {
	slot := screeningSlot{Address: outcome.Address}
	if outcome.Err != nil {
		slot.Error = outcome.Err.Error()
		return slot
	}
	slot.Data = outcome.Result
	return slot
}
