// Package metrics registers the Prometheus instrumentation for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts handled HTTP requests by method, path and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "onme_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// RateFetches counts live exchange-rate fetch attempts.
	RateFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "onme_rate_fetches_total",
		Help: "Live exchange-rate fetch attempts.",
	})

	// RateFetchFailures counts live fetches that ended in the fallback path.
	RateFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "onme_rate_fetch_failures_total",
		Help: "Exchange-rate fetches that failed and were served from the static fallback.",
	})

	// RateCacheHits counts rate lookups answered from the snapshot cache.
	RateCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "onme_rate_cache_hits_total",
		Help: "Exchange-rate lookups served from the cached snapshot.",
	})
)

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
