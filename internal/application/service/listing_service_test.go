package service

import (
	"context"
	"testing"
	"time"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listedAt(token, network, timestamp string) entity.ItemListed {
	item := listedItem("0xA", "0xB", token, "1.0", "0xC", network)
	if timestamp != "" {
		item.BlockTimestamp = strPtr(timestamp)
	}
	return item
}

func newListingService(repo *fakeEventRepo) *ListingApplicationService {
	poller := NewListingPoller(repo, pollerConfig(time.Minute), logger.NewNop())
	svc := NewListingApplicationService(poller, logger.NewNop())
	return svc.(*ListingApplicationService)
}

func TestMultiNetworkMergeOrdersByTimestampDesc(t *testing.T) {
	repo := &fakeEventRepo{byNet: map[string]*entity.MarketplaceEvents{
		"eth": eventsWithListings(
			listedAt("1", "eth", "2026-01-01T00:00:00Z"),
			listedAt("2", "eth", "2026-03-01T00:00:00Z"),
		),
		"polygon": eventsWithListings(
			listedAt("3", "polygon", "2026-02-01T00:00:00Z"),
		),
	}}
	svc := newListingService(repo)

	merged, err := svc.GetMultiNetworkActiveListings(context.Background(), []string{"eth", "polygon"}, entity.ListingQuery{First: 50})

	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "2", merged[0].TokenID)
	assert.Equal(t, "3", merged[1].TokenID)
	assert.Equal(t, "1", merged[2].TokenID)
}

func TestMultiNetworkMergeNullTimestamps(t *testing.T) {
	// Entries without a timestamp compare as equal; their relative order is
	// unspecified, but they must all survive the merge.
	repo := &fakeEventRepo{byNet: map[string]*entity.MarketplaceEvents{
		"eth": eventsWithListings(
			listedAt("1", "eth", ""),
			listedAt("2", "eth", "2026-01-01T00:00:00Z"),
		),
		"polygon": eventsWithListings(
			listedAt("3", "polygon", ""),
		),
	}}
	svc := newListingService(repo)

	merged, err := svc.GetMultiNetworkActiveListings(context.Background(), []string{"eth", "polygon"}, entity.ListingQuery{First: 50})

	require.NoError(t, err)
	require.Len(t, merged, 3)

	tokens := make(map[string]bool, len(merged))
	for _, listing := range merged {
		tokens[listing.TokenID] = true
	}
	assert.True(t, tokens["1"] && tokens["2"] && tokens["3"])
}

func TestMultiNetworkPartialFailureKeepsData(t *testing.T) {
	// One network delivers, the other fails. The surviving listings are
	// returned together with the failing network's error.
	repo := &fakeEventRepo{
		byNet: map[string]*entity.MarketplaceEvents{
			"eth": eventsWithListings(listedAt("1", "eth", "2026-01-01T00:00:00Z")),
		},
		errByNet: map[string]error{
			"polygon": context.DeadlineExceeded,
		},
	}
	svc := newListingService(repo)

	merged, err := svc.GetMultiNetworkActiveListings(context.Background(), []string{"eth", "polygon"}, entity.ListingQuery{First: 50})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, merged, 1)
	assert.Equal(t, "1", merged[0].TokenID)
	assert.Equal(t, "eth", merged[0].Network)
}

func TestMultiNetworkAllFailuresReturnError(t *testing.T) {
	failing := newListingService(&fakeEventRepo{err: context.DeadlineExceeded})

	merged, err := failing.GetMultiNetworkActiveListings(context.Background(), []string{"eth", "polygon"}, entity.ListingQuery{First: 50})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, merged)
}

func TestMultiNetworkEmptyResultIsNotNil(t *testing.T) {
	// A successful fetch with no active listings must serialize as an empty
	// array, matching the single-network path.
	repo := &fakeEventRepo{byNet: map[string]*entity.MarketplaceEvents{}}
	svc := newListingService(repo)

	merged, err := svc.GetMultiNetworkActiveListings(context.Background(), []string{"eth", "polygon"}, entity.ListingQuery{First: 50})

	require.NoError(t, err)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestGetActiveListingsAppliesReduction(t *testing.T) {
	events := eventsWithListings(
		listedAt("1", "eth", "2026-01-01T00:00:00Z"),
		listedAt("2", "eth", "2026-01-02T00:00:00Z"),
	)
	events.AllItemBoughts = entity.ItemBoughtsConnection{Nodes: []entity.ItemBought{{
		ContractAddress: "0xA",
		NFTAddress:      strPtr("0xB"),
		TokenID:         strPtr("2"),
		Network:         "eth",
	}}}
	repo := &fakeEventRepo{byNet: map[string]*entity.MarketplaceEvents{"eth": events}}
	svc := newListingService(repo)

	listings, err := svc.GetActiveListings(context.Background(), entity.ListingQuery{First: 50, Network: "eth"})

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "1", listings[0].TokenID)
}
