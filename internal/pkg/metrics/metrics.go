package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "market_scout"

var (
	// ProviderRequests counts market-data requests by endpoint and outcome.
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Requests sent to the market-data provider.",
	}, []string{"endpoint", "outcome"})

	// ProviderLatency observes provider round trips.
	ProviderLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of market-data provider requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// PriceCacheLookups counts price cache hits and misses.
	PriceCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_cache_lookups_total",
		Help:      "Price cache lookups by result.",
	}, []string{"kind", "result"})

	// Scans counts market scans by outcome (ok, aborted, invalid).
	Scans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Market scans by outcome.",
	}, []string{"outcome"})

	// ScanPages counts pages consumed by market scans.
	ScanPages = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_pages_total",
		Help:      "Market pages consumed by scans.",
	})

	// Classifications counts address classifications by source.
	Classifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifications_total",
		Help:      "Address classifications by outcome source.",
	}, []string{"source"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry.
// Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ProviderRequests,
			ProviderLatency,
			PriceCacheLookups,
			Scans,
			ScanPages,
			Classifications,
		)
	})
}
