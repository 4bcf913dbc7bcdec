package service

import (
	"context"
	"sync"
	"time"

	"nft-market-gateway/internal/domain/entity"
	"nft-market-gateway/internal/domain/repository"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// listingCacheEntry holds the last reduced result for one parameter tuple.
// lastAccess is touched on every read; the refresh loop uses it to drop
// tuples nobody is asking for anymore.
type listingCacheEntry struct {
	query      entity.ListingQuery
	listings   []entity.ActiveListing
	fetchedAt  time.Time
	lastAccess time.Time
}

// ListingPoller caches derived active listings per query tuple, deduplicates
// concurrent fetches for the same tuple and refreshes known tuples on a
// fixed interval. The query tuple comes from client parameters, so the cache
// must not grow with whatever callers send: tuples not read since the
// previous refresh tick are evicted instead of refetched, which bounds both
// the entry count and the recurring indexer load to what is actively in use.
type ListingPoller struct {
	events repository.MarketplaceEventRepository
	config *config.ListingsConfig
	logger *logger.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*listingCacheEntry
	stop    chan struct{}
}

// NewListingPoller creates a new listing poller
func NewListingPoller(
	events repository.MarketplaceEventRepository,
	cfg *config.ListingsConfig,
	logger *logger.Logger,
) *ListingPoller {
	return &ListingPoller{
		events:  events,
		config:  cfg,
		logger:  logger.WithComponent("listing-poller"),
		entries: make(map[string]*listingCacheEntry),
		stop:    make(chan struct{}),
	}
}

// Get returns the active listings for the given query. A cached result
// fresher than the configured stale window is served without a network round
// trip; otherwise one fetch is issued and shared among all concurrent
// callers of the same tuple. If the caller's context ends first, the caller
// gets the context error while the shared fetch still completes and warms
// the cache.
func (p *ListingPoller) Get(ctx context.Context, query entity.ListingQuery) ([]entity.ActiveListing, error) {
	key := query.CacheKey()

	p.mu.Lock()
	var cached []entity.ActiveListing
	var fresh bool
	if entry, ok := p.entries[key]; ok {
		entry.lastAccess = time.Now()
		cached = entry.listings
		fresh = time.Since(entry.fetchedAt) < p.config.StaleAfter
	}
	p.mu.Unlock()
	if fresh {
		return cached, nil
	}

	ch := p.group.DoChan(key, func() (interface{}, error) {
		return p.fetch(query)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]entity.ActiveListing), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetch performs one indexer round trip and replaces the cache entry. It is
// deliberately detached from any single caller's context: a consumer that
// goes away must not abort a fetch other consumers may be waiting on.
func (p *ListingPoller) fetch(query entity.ListingQuery) ([]entity.ActiveListing, error) {
	events, err := p.events.FetchEvents(context.Background(), query)
	if err != nil {
		return nil, err
	}

	listings := ReduceActiveListings(
		events.AllItemListeds.Nodes,
		events.AllItemBoughts.Nodes,
		events.AllItemCanceleds.Nodes,
	)

	p.logger.Debug("Refreshed active listings",
		zap.String("network", query.Network),
		zap.Int("listed", len(events.AllItemListeds.Nodes)),
		zap.Int("bought", len(events.AllItemBoughts.Nodes)),
		zap.Int("canceled", len(events.AllItemCanceleds.Nodes)),
		zap.Int("active", len(listings)),
	)

	p.mu.Lock()
	// A background refresh must not count as an access, so an existing
	// entry keeps its lastAccess; a first fetch is always caller-driven.
	lastAccess := time.Now()
	if prev, ok := p.entries[query.CacheKey()]; ok {
		lastAccess = prev.lastAccess
	}
	p.entries[query.CacheKey()] = &listingCacheEntry{
		query:      query,
		listings:   listings,
		fetchedAt:  time.Now(),
		lastAccess: lastAccess,
	}
	p.mu.Unlock()

	return listings, nil
}

// Start launches the background refresh loop.
func (p *ListingPoller) Start() {
	go p.loop()
}

// Stop terminates the background refresh loop.
func (p *ListingPoller) Stop() {
	close(p.stop)
}

func (p *ListingPoller) loop() {
	ticker := time.NewTicker(p.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.refreshAll()
		}
	}
}

// refreshAll re-fetches every query tuple read since the previous tick,
// sharing work with any in-flight caller fetch for the same tuple. Tuples
// idle for a full interval are evicted; the next caller asking for one pays
// a cold fetch instead.
func (p *ListingPoller) refreshAll() {
	cutoff := time.Now().Add(-p.config.RefreshInterval)

	p.mu.Lock()
	queries := make([]entity.ListingQuery, 0, len(p.entries))
	for key, entry := range p.entries {
		if entry.lastAccess.Before(cutoff) {
			delete(p.entries, key)
			continue
		}
		queries = append(queries, entry.query)
	}
	p.mu.Unlock()

	for _, query := range queries {
		q := query
		if _, err, _ := p.group.Do(q.CacheKey(), func() (interface{}, error) {
			return p.fetch(q)
		}); err != nil {
			p.logger.Warn("Background listing refresh failed",
				zap.String("network", q.Network),
				zap.Error(err))
		}
	}
}
