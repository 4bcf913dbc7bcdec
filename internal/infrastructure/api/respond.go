package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/infrastructure/logger"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single translation point from the error taxonomy to
// HTTP responses. Upstream status codes pass through; configuration and
// internal detail stays in the server logs.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message})
		return
	}

	var configErr *entity.ConfigurationError
	if errors.As(err, &configErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: configErr.Message})
		return
	}

	var upstreamErr *entity.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeJSON(w, upstreamErr.StatusCode, errorResponse{
			Error:   upstreamErr.Message,
			Details: upstreamErr.Details,
		})
		return
	}

	var internalErr *entity.InternalError
	if errors.As(err, &internalErr) {
		log.Error("Request failed with internal error", zap.Error(internalErr.Err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Details: internalErr.Message,
		})
		return
	}

	log.Error("Request failed with unclassified error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
