// Package metrics provides Prometheus metrics for the pokedex service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal tracks outbound PokeAPI requests by resource and status
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokesky",
			Subsystem: "pokeapi",
			Name:      "requests_total",
			Help:      "Total number of outbound PokeAPI requests",
		},
		[]string{"resource", "status_code"},
	)

	// UpstreamRequestDuration tracks outbound PokeAPI request duration
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pokesky",
			Subsystem: "pokeapi",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound PokeAPI requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	// ChainResolutionsTotal tracks evolution chain resolutions by outcome
	ChainResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokesky",
			Subsystem: "evolution",
			Name:      "chain_resolutions_total",
			Help:      "Total number of evolution chain resolutions by outcome",
		},
		[]string{"status"},
	)

	// ChainResolutionDuration tracks full chain resolution duration
	ChainResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pokesky",
			Subsystem: "evolution",
			Name:      "chain_resolution_duration_seconds",
			Help:      "Duration of full evolution chain resolutions in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// StageDetailFailures tracks per-species detail fetches that degraded to null
	StageDetailFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pokesky",
			Subsystem: "evolution",
			Name:      "stage_detail_failures_total",
			Help:      "Total number of per-species detail fetches that failed and were recorded as null",
		},
	)

	// CacheWritesTotal tracks chain cache upserts by outcome
	CacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokesky",
			Subsystem: "cache",
			Name:      "chain_writes_total",
			Help:      "Total number of evolution chain cache upserts by outcome",
		},
		[]string{"status"},
	)

	// CatalogIndexLookups tracks catalog index lookups by source (redis or upstream)
	CatalogIndexLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokesky",
			Subsystem: "catalog",
			Name:      "index_lookups_total",
			Help:      "Total number of catalog index lookups by source",
		},
		[]string{"resource", "source"},
	)

	// EventsPublished tracks lifecycle events published to kafka
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokesky",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of lifecycle events published by outcome",
		},
		[]string{"type", "status"},
	)
)
