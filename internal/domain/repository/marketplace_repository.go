package repository

import (
	"context"
	"nft-market-gateway/internal/domain/entity"
)

// MarketplaceEventRepository defines the interface for fetching raw
// marketplace event streams from the indexer
type MarketplaceEventRepository interface {
	// FetchEvents retrieves the listed, bought and canceled event streams in
	// one round trip using the given query parameters
	FetchEvents(ctx context.Context, query entity.ListingQuery) (*entity.MarketplaceEvents, error)
}
