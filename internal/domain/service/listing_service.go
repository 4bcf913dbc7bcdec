package service

import (
	"context"
	"nft-market-gateway/internal/domain/entity"
)

// ListingService defines the interface for active-listing queries
type ListingService interface {
	// GetActiveListings returns the derived active listings for one network
	// filter, serving cached data while it is still fresh
	GetActiveListings(ctx context.Context, query entity.ListingQuery) ([]entity.ActiveListing, error)

	// GetMultiNetworkActiveListings merges active listings from several
	// networks, ordered by block timestamp descending; the relative order of
	// entries without a timestamp is unspecified
	GetMultiNetworkActiveListings(ctx context.Context, networks []string, query entity.ListingQuery) ([]entity.ActiveListing, error)
}
