// Package cache provides the typed caching layer over the Redis store
// adapter. It centralizes JSON serialization, the default TTL, and the
// soft-fail policy: no caller ever blocks or errors because the cache
// backend is unhealthy, and a corrupt entry is indistinguishable from
// a miss.
//
// All higher layers go through this package; raw store keys are never
// used outside it except by the quota counter, which persists its
// state as an ordinary cache entry.
package cache
