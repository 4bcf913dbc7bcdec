package compliance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func newTestCircleClient(baseURL, apiKey string) *CircleClient {
	screener := NewCircleClient(&config.ComplianceConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Chain:   "ETH-SEPOLIA",
		Timeout: 5 * time.Second,
	}, logger.NewNop())
	return screener.(*CircleClient)
}

func TestCircleClientMissingAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestCircleClient(server.URL, "")

	_, err := client.ScreenAddress(context.Background(), testAddr)

	var configErr *entity.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "API configuration error", configErr.Message)
	assert.False(t, called, "no vendor call may happen without a credential")
}

func TestCircleClientRequestShape(t *testing.T) {
	var captured screeningRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/w3s/compliance/screening/addresses", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"s-1","address":"` + testAddr + `","chain":"ETH-SEPOLIA","risk":{"level":"LOW","score":1},"screenedAt":"2026-01-01T00:00:00Z"}}`))
	}))
	defer server.Close()

	client := newTestCircleClient(server.URL, "secret-key")

	result, err := client.ScreenAddress(context.Background(), testAddr)

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", authHeader)
	assert.Equal(t, testAddr, captured.Address)
	assert.Equal(t, "ETH-SEPOLIA", captured.Chain)
	_, parseErr := uuid.Parse(captured.IdempotencyKey)
	assert.NoError(t, parseErr, "idempotency key must be a uuid")

	assert.Equal(t, "s-1", result.ID)
	assert.True(t, result.Compliant())
	require.NotNil(t, result.Risk.Score)
	assert.Equal(t, float64(1), *result.Risk.Score)
}

func TestCircleClientFreshIdempotencyKeyPerCall(t *testing.T) {
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req screeningRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		keys = append(keys, req.IdempotencyKey)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"s-1","address":"a","chain":"ETH-SEPOLIA","risk":{"level":"LOW"},"screenedAt":"t"}}`))
	}))
	defer server.Close()

	client := newTestCircleClient(server.URL, "secret-key")

	_, err := client.ScreenAddress(context.Background(), testAddr)
	require.NoError(t, err)
	_, err = client.ScreenAddress(context.Background(), testAddr)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestCircleClientVendorFailureSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"code":429,"message":"rate limited"}`))
	}))
	defer server.Close()

	client := newTestCircleClient(server.URL, "secret-key")

	_, err := client.ScreenAddress(context.Background(), testAddr)

	var upstreamErr *entity.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Equal(t, "Compliance screening failed", upstreamErr.Message)
	// The vendor body is logged, never surfaced.
	assert.NotContains(t, err.Error(), "rate limited")
}

func TestCircleClientMalformedVendorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestCircleClient(server.URL, "secret-key")

	_, err := client.ScreenAddress(context.Background(), testAddr)

	var internalErr *entity.InternalError
	assert.ErrorAs(t, err, &internalErr)
}

func TestCircleClientSingleCallPerInvocation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestCircleClient(server.URL, "secret-key")

	_, err := client.ScreenAddress(context.Background(), testAddr)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "failures must not be retried")
}
