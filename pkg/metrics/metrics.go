// Package metrics provides the centralized Prometheus metrics registry for
// the news gateway. All metrics are defined in their respective packages
// (store, cache, quota, news, resolve) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the gateway.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Store Metrics (pkg/store):
//   - newsaura_store_errors_total{operation} (Counter): Soft-failed Redis operations by kind (get, set, delete, keys)
//   - newsaura_store_disabled (Gauge): Whether the Redis adapter is disabled (1) or active (0)
//
// Cache Metrics (pkg/cache):
//   - newsaura_cache_hits_total{domain} (Counter): Typed cache hits by key domain (news, summary, sentiment, comments, quota)
//   - newsaura_cache_misses_total{domain} (Counter): Typed cache misses by key domain
//   - newsaura_cache_corrupt_entries_total (Counter): Entries treated as misses due to decode failure
//   - newsaura_cache_invalidations_total{kind} (Counter): Explicit invalidations (key, prefix)
//
// Quota Metrics (pkg/quota):
//   - newsaura_gnews_hits_today (Gauge): GNews API calls recorded for the current UTC day
//   - newsaura_gnews_quota_blocks_total (Counter): Upstream calls blocked by the exhausted daily quota
//   - newsaura_gnews_quota_warnings_total (Counter): Quota increments recorded inside the warning band
//
// Upstream Metrics (pkg/news):
//   - newsaura_gnews_requests_total{status} (Counter): GNews API requests by outcome
//   - newsaura_gnews_request_duration_seconds (Histogram): GNews API request duration
//
// Pipeline Metrics (pkg/resolve):
//   - newsaura_resolve_results_total{operation, provenance} (Counter): Pipeline results by
//     operation (news, summary, sentiment) and provenance (cache, api, generated, computed, placeholder)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(newsaura_cache_hits_total[5m])) /
//   (sum(rate(newsaura_cache_hits_total[5m])) + sum(rate(newsaura_cache_misses_total[5m])))
//
//   # Remaining Daily Quota
//   100 - newsaura_gnews_hits_today
//
//   # Placeholder Rate (summary pipeline degradation)
//   rate(newsaura_resolve_results_total{operation="summary",provenance="placeholder"}[15m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(newsaura_gnews_request_duration_seconds_bucket[5m]))
//
//   # Degraded Cache Backend
//   newsaura_store_disabled == 1
