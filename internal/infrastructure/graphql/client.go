package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"
)

// Client issues GraphQL queries against the marketplace indexer
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new GraphQL client
func NewClient(cfg *config.GraphQLConfig, logger *logger.Logger) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.WithComponent("graphql-client"),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query performs one POST round trip and decodes the data field into out.
// Non-success status codes and envelope-level errors both surface as
// upstream errors carrying the response status.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &entity.InternalError{Message: "graphql request could not be encoded", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &entity.InternalError{Message: "graphql request could not be built", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &entity.InternalError{Message: "graphql request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &entity.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "Listing fetch failed",
			Details:    fmt.Sprintf("indexer returned status %d", resp.StatusCode),
		}
	}

	var envelope graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &entity.InternalError{Message: "graphql response could not be decoded", Err: err}
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return &entity.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "Listing fetch failed",
			Details:    "graphql errors: " + strings.Join(messages, ", "),
		}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &entity.InternalError{Message: "graphql data could not be decoded", Err: err}
	}
	return nil
}
