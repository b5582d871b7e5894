package exchange

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/ShotaYmzk/onme-backend/internal/metrics"
	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// snapshotTTL is the validity window of a cached snapshot.
const snapshotTTL = time.Hour

const cacheKey = "latest"

// Fetcher fetches a live snapshot. Satisfied by *Client; tests substitute
// their own.
type Fetcher interface {
	Latest(ctx context.Context, base money.Currency) (*Snapshot, error)
}

// Provider hands out rate snapshots. Cache hits within the TTL cost no I/O;
// concurrent cache misses collapse into a single fetch via singleflight;
// any fetch failure is answered with the static fallback snapshot, so
// Rates never fails.
type Provider struct {
	fetcher Fetcher
	base    money.Currency
	cache   *gocache.Cache
	group   singleflight.Group
}

// NewProvider creates a Provider fetching rates relative to base.
func NewProvider(fetcher Fetcher, base money.Currency) *Provider {
	return &Provider{
		fetcher: fetcher,
		base:    base,
		cache:   gocache.New(snapshotTTL, 10*time.Minute),
	}
}

// Rates returns the current snapshot. The returned snapshot is immutable;
// callers thread it through a whole computation rather than calling Rates
// again mid-run.
func (p *Provider) Rates(ctx context.Context) *Snapshot {
	if cached, ok := p.cache.Get(cacheKey); ok {
		metrics.RateCacheHits.Inc()
		return cached.(*Snapshot)
	}

	snap, _, _ := p.group.Do(cacheKey, func() (interface{}, error) {
		// A racing caller may have refreshed the cache while this one
		// waited on the flight group.
		if cached, ok := p.cache.Get(cacheKey); ok {
			metrics.RateCacheHits.Inc()
			return cached.(*Snapshot), nil
		}

		metrics.RateFetches.Inc()
		fetched, err := p.fetcher.Latest(ctx, p.base)
		if err != nil {
			metrics.RateFetchFailures.Inc()
			slog.Warn("Rate fetch failed, serving static fallback", "base", p.base, "error", err)
			// The fallback is served but not cached, so the next call
			// retries the live source.
			return FallbackSnapshot(), nil
		}

		p.cache.Set(cacheKey, fetched, gocache.DefaultExpiration)
		slog.Info("Rate snapshot refreshed", "base", fetched.Base, "date", fetched.Date, "currencies", len(fetched.Rates))
		return fetched, nil
	})
	return snap.(*Snapshot)
}
