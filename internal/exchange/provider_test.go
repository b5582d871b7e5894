package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// countingFetcher returns a canned snapshot (or error) and counts calls.
type countingFetcher struct {
	calls int64
	err   error
	block chan struct{} // when set, Latest waits on it
}

func (f *countingFetcher) Latest(ctx context.Context, base money.Currency) (*Snapshot, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &Snapshot{
		Base:      base,
		Date:      "2026-08-01",
		Rates:     testSnapshot().Rates,
		FetchedAt: time.Now(),
	}, nil
}

func TestProviderCachesSnapshot(t *testing.T) {
	fetcher := &countingFetcher{}
	p := NewProvider(fetcher, money.USD)

	first := p.Rates(context.Background())
	second := p.Rates(context.Background())

	require.NotNil(t, first)
	assert.Same(t, first, second, "cache hit must return the same snapshot")
	assert.EqualValues(t, 1, atomic.LoadInt64(&fetcher.calls))
}

func TestProviderServesFallbackOnFailure(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("connection refused")}
	p := NewProvider(fetcher, money.USD)

	snap := p.Rates(context.Background())
	require.NotNil(t, snap)

	for _, c := range []money.Currency{money.JPY, money.USD, money.EUR} {
		rate, err := snap.Rate(c)
		require.NoError(t, err)
		assert.True(t, rate.IsPositive())
	}
}

func TestProviderDoesNotCacheFallback(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("boom")}
	p := NewProvider(fetcher, money.USD)

	p.Rates(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt64(&fetcher.calls))

	// The live source recovers; the next call must retry instead of
	// serving a cached fallback for an hour.
	fetcher.err = nil
	snap := p.Rates(context.Background())
	assert.EqualValues(t, 2, atomic.LoadInt64(&fetcher.calls))
	assert.Equal(t, "2026-08-01", snap.Date)
}

func TestProviderDeduplicatesConcurrentFetches(t *testing.T) {
	fetcher := &countingFetcher{block: make(chan struct{})}
	p := NewProvider(fetcher, money.USD)

	const callers = 8
	var wg sync.WaitGroup
	snaps := make([]*Snapshot, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i] = p.Rates(context.Background())
		}(i)
	}

	// Let the goroutines pile onto the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&fetcher.calls), "concurrent misses must share one fetch")
	for i := 1; i < callers; i++ {
		assert.Same(t, snaps[0], snaps[i])
	}
}

func TestClientLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"base": "USD",
			"date": "2026-08-28",
			"rates": map[string]float64{
				"JPY": 152.5,
				"EUR": 0.92,
				"USD": 1.0,
				"ZZZ": 42.0, // unknown code, dropped
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	snap, err := client.Latest(context.Background(), money.USD)
	require.NoError(t, err)

	assert.Equal(t, money.USD, snap.Base)
	assert.Equal(t, "2026-08-28", snap.Date)
	assert.True(t, snap.Supports(money.JPY))
	assert.False(t, snap.Supports(money.Currency("ZZZ")))
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestClientLatestFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>maintenance</html>"))
			},
		},
		{
			name: "wrong shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{"foo": "bar"})
			},
		},
		{
			name: "missing required currencies",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"base":  "USD",
					"date":  "2026-08-28",
					"rates": map[string]float64{"USD": 1.0},
				})
			},
		},
		{
			name: "non-positive rate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"base":  "USD",
					"date":  "2026-08-28",
					"rates": map[string]float64{"JPY": -1, "EUR": 0.9, "USD": 1},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			_, err := client.Latest(context.Background(), money.USD)
			assert.Error(t, err)
		})
	}
}

func TestClientTimeoutFallsThroughProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)
	p := NewProvider(client, money.USD)

	start := time.Now()
	snap := p.Rates(context.Background())
	require.NotNil(t, snap)
	assert.Less(t, time.Since(start), 400*time.Millisecond, "timeout must bound the fetch")
	assert.True(t, snap.Supports(money.JPY), "fallback must cover the core currencies")
}
