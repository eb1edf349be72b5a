package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks typed-cache hits by key domain (news, summary, ...)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsaura_cache_hits_total",
			Help: "Total number of typed cache hits",
		},
		[]string{"domain"},
	)

	// CacheMisses tracks typed-cache misses by key domain
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsaura_cache_misses_total",
			Help: "Total number of typed cache misses",
		},
		[]string{"domain"},
	)

	// CacheCorrupt tracks entries dropped because they failed to decode
	CacheCorrupt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsaura_cache_corrupt_entries_total",
			Help: "Total number of cache entries treated as misses due to decode failure",
		},
	)

	// CacheInvalidations tracks explicit invalidations
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsaura_cache_invalidations_total",
			Help: "Total number of explicit cache invalidations",
		},
		[]string{"kind"}, // "key", "prefix"
	)
)
