package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/domain/repository"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const screeningPath = "/v1/w3s/compliance/screening/addresses"

// CircleClient screens addresses against the Circle compliance API
type CircleClient struct {
	config     *config.ComplianceConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// NewCircleClient creates a new Circle screening client
func NewCircleClient(cfg *config.ComplianceConfig, logger *logger.Logger) repository.AddressScreener {
	return &CircleClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.WithComponent("circle-client"),
	}
}

type screeningRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
	Address        string `json:"address"`
	Chain          string `json:"chain"`
}

type screeningResponse struct {
	Data entity.ComplianceResult `json:"data"`
}

// ScreenAddress performs exactly one vendor round trip. Every call carries a
// fresh idempotency key, so a caller retry is a new logical screening; the
// client itself never retries. Vendor response bodies stay in the server
// logs and are never returned to the caller.
func (c *CircleClient) ScreenAddress(ctx context.Context, address string) (*entity.ComplianceResult, error) {
	if c.config.APIKey == "" {
		c.logger.Error("Compliance API key not found in configuration")
		return nil, &entity.ConfigurationError{Message: "API configuration error"}
	}

	payload := screeningRequest{
		IdempotencyKey: uuid.NewString(),
		Address:        address,
		Chain:          c.config.Chain,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &entity.InternalError{Message: "screening request could not be encoded", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+screeningPath, bytes.NewReader(body))
	if err != nil {
		return nil, &entity.InternalError{Message: "screening request could not be built", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Compliance screening request failed", zap.Error(err))
		return nil, &entity.InternalError{Message: "screening request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("Compliance vendor returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return nil, &entity.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "Compliance screening failed",
			Details:    fmt.Sprintf("vendor returned status %d", resp.StatusCode),
		}
	}

	var screening screeningResponse
	if err := json.NewDecoder(resp.Body).Decode(&screening); err != nil {
		c.logger.Error("Failed to decode compliance vendor response", zap.Error(err))
		return nil, &entity.InternalError{Message: "screening response could not be decoded", Err: err}
	}

	return &screening.Data, nil
}
