package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records administrator login attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_auth_attempts_total",
			Help: "Total number of administrator login attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitrine_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CacheLookups counts response cache lookups by outcome (hit|miss|bypass|error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_response_cache_lookups_total",
			Help: "Response cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	// CacheInvalidations counts entries removed by pattern invalidation.
	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrine_response_cache_invalidated_entries_total",
			Help: "Response cache entries removed by invalidation",
		},
	)

	// CacheEvictions counts entries dropped because their TTL elapsed.
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrine_response_cache_evictions_total",
			Help: "Expired response cache entries removed lazily or by the sweeper",
		},
	)

	// CacheEntries reports the current number of stored responses.
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrine_response_cache_entries",
			Help: "Number of entries held by the response cache",
		},
	)

	// SlugCollisions counts suffixed slugs and insert retries per collection.
	SlugCollisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_slug_collisions_total",
			Help: "Slug candidates rejected because they were already taken",
		},
		[]string{"collection", "stage"},
	)

	// MaintenanceRuns records background job executions by job and result.
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_maintenance_runs_total",
			Help: "Maintenance job executions",
		},
		[]string{"job", "result"},
	)
)
