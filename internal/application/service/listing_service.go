package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"nft-market-gateway/internal/domain/entity"
	domain_service "nft-market-gateway/internal/domain/service"
	"nft-market-gateway/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// ListingApplicationService implements ListingService on top of the polling
// cache.
type ListingApplicationService struct {
	poller *ListingPoller
	logger *logger.Logger
}

// NewListingApplicationService creates a new listing application service
func NewListingApplicationService(poller *ListingPoller, logger *logger.Logger) domain_service.ListingService {
	return &ListingApplicationService{
		poller: poller,
		logger: logger.WithComponent("listing-service"),
	}
}

// GetActiveListings returns the derived active listings for one network filter
func (s *ListingApplicationService) GetActiveListings(ctx context.Context, query entity.ListingQuery) ([]entity.ActiveListing, error) {
	return s.poller.Get(ctx, query)
}

// GetMultiNetworkActiveListings fetches each requested network independently
// and merges the results, most recent block timestamp first. Per-network
// fetches run concurrently; a failing network does not discard data from the
// networks that succeeded, but the first error observed is reported.
func (s *ListingApplicationService) GetMultiNetworkActiveListings(ctx context.Context, networks []string, query entity.ListingQuery) ([]entity.ActiveListing, error) {
	type networkResult struct {
		listings []entity.ActiveListing
		err      error
	}

	results := make([]networkResult, len(networks))
	var wg sync.WaitGroup
	for i, network := range networks {
		perNetwork := query
		perNetwork.Network = network
		wg.Add(1)
		go func(i int, q entity.ListingQuery) {
			defer wg.Done()
			results[i].listings, results[i].err = s.poller.Get(ctx, q)
		}(i, perNetwork)
	}
	wg.Wait()

	merged := make([]entity.ActiveListing, 0)
	var firstErr error
	for i, res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			s.logger.Warn("Network listing fetch failed",
				zap.String("network", networks[i]),
				zap.Error(res.err))
			continue
		}
		merged = append(merged, res.listings...)
	}

	mergeByTimestampDesc(merged)

	if len(merged) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return merged, firstErr
}

// mergeByTimestampDesc orders listings by block timestamp, most recent
// first. Any pair where either timestamp is absent or unparseable compares
// as equal, so the relative order among such entries is unspecified.
func mergeByTimestampDesc(listings []entity.ActiveListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		ti, ok := parseTimestamp(listings[i].BlockTimestamp)
		if !ok {
			return false
		}
		tj, ok := parseTimestamp(listings[j].BlockTimestamp)
		if !ok {
			return false
		}
		return ti.After(tj)
	})
}

func parseTimestamp(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
