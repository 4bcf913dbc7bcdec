package graphql

import (
	"context"
	"fmt"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/domain/repository"
	"nft-market-gateway/internal/infrastructure/logger"
)

// marketplaceEventsQuery retrieves the three event streams in one round
// trip. Pagination and ordering apply to the listed stream only; bought and
// canceled are consumed whole to build the inactive set.
const marketplaceEventsQuery = `
  query GetMarketplaceEvents(
    $first: Int
    $orderBy: [ItemListedsOrderBy!]
    $networkFilter: String
  ) {
    allItemListeds(
      first: $first
      orderBy: $orderBy
      condition: { network: $networkFilter }
    ) {
      nodes {
        rindexerId
        contractAddress
        seller
        nftAddress
        tokenId
        price
        txHash
        blockNumber
        blockTimestamp
        blockHash
        network
        txIndex
        logIndex
      }
      pageInfo {
        hasNextPage
        hasPreviousPage
        startCursor
        endCursor
      }
      totalCount
    }
    allItemBoughts(condition: { network: $networkFilter }) {
      nodes {
        contractAddress
        nftAddress
        tokenId
        network
      }
    }
    allItemCanceleds(condition: { network: $networkFilter }) {
      nodes {
        contractAddress
        nftAddress
        tokenId
        network
      }
    }
  }
`

// MarketplaceRepository fetches marketplace event streams over GraphQL
type MarketplaceRepository struct {
	client *Client
	logger *logger.Logger
}

// NewMarketplaceRepository creates a new marketplace event repository
func NewMarketplaceRepository(client *Client, logger *logger.Logger) repository.MarketplaceEventRepository {
	return &MarketplaceRepository{
		client: client,
		logger: logger.WithComponent("marketplace-repository"),
	}
}

// FetchEvents retrieves the listed, bought and canceled streams
func (r *MarketplaceRepository) FetchEvents(ctx context.Context, query entity.ListingQuery) (*entity.MarketplaceEvents, error) {
	// A null networkFilter matches every network.
	var networkFilter any
	if query.Network != "" {
		networkFilter = query.Network
	}

	variables := map[string]any{
		"first":         query.First,
		"orderBy":       query.OrderBy,
		"networkFilter": networkFilter,
	}

	var events entity.MarketplaceEvents
	if err := r.client.Query(ctx, marketplaceEventsQuery, variables, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch marketplace events: %w", err)
	}
	return &events, nil
}
