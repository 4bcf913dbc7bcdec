package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nft-market-gateway/internal/domain/entity"
	domain_service "nft-market-gateway/internal/domain/service"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"
)

// ListingsHandler serves the derived active-listing endpoints
type ListingsHandler struct {
	listings domain_service.ListingService
	config   *config.ListingsConfig
	logger   *logger.Logger
}

// NewListingsHandler creates a new listings handler
func NewListingsHandler(listings domain_service.ListingService, cfg *config.ListingsConfig, logger *logger.Logger) *ListingsHandler {
	return &ListingsHandler{
		listings: listings,
		config:   cfg,
		logger:   logger.WithComponent("listings-handler"),
	}
}

type listingsResponseBody struct {
	Data       []entity.ActiveListing `json:"data"`
	TotalCount int                    `json:"totalCount"`
}

// List handles GET /api/listings?network=&first=&orderBy=
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	listings, err := h.listings.GetActiveListings(r.Context(), query)
	if err != nil {
		h.writeListingsError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingsResponseBody{Data: listings, TotalCount: len(listings)})
}

// ListMulti handles GET /api/listings/multi?networks=a,b. Partial data from
// the networks that succeeded is served even when another network failed.
func (h *ListingsHandler) ListMulti(w http.ResponseWriter, r *http.Request) {
	query, err := h.parseQuery(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	raw := r.URL.Query().Get("networks")
	if raw == "" {
		writeError(w, h.logger, &entity.ValidationError{Message: "networks parameter is required"})
		return
	}
	networks := strings.Split(raw, ",")

	listings, err := h.listings.GetMultiNetworkActiveListings(r.Context(), networks, query)
	if err != nil && len(listings) == 0 {
		h.writeListingsError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingsResponseBody{Data: listings, TotalCount: len(listings)})
}

func (h *ListingsHandler) parseQuery(r *http.Request) (entity.ListingQuery, error) {
	query := entity.ListingQuery{
		First:   h.config.PageSize,
		OrderBy: h.config.OrderBy,
		Network: r.URL.Query().Get("network"),
	}

	if raw := r.URL.Query().Get("first"); raw != "" {
		first, err := strconv.Atoi(raw)
		if err != nil || first <= 0 {
			return entity.ListingQuery{}, &entity.ValidationError{Message: "first must be a positive integer"}
		}
		query.First = first
	}

	if raw := r.URL.Query().Get("orderBy"); raw != "" {
		query.OrderBy = strings.Split(raw, ",")
	}

	return query, nil
}

// writeListingsError collapses indexer failures to a gateway error; the
// indexer's own status never passes through to the marketplace client.
func (h *ListingsHandler) writeListingsError(w http.ResponseWriter, err error) {
	var upstreamErr *entity.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Listing fetch failed"})
		return
	}
	writeError(w, h.logger, err)
}
