package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsaura/news-gateway/pkg/store"
)

// DefaultTTL is the TTL applied when a caller does not override it.
// 15 minutes matches the upstream budget: lowering it multiplies
// quota consumption.
const DefaultTTL = 15 * time.Minute

// Cache is the typed JSON cache shared by all higher layers.
type Cache struct {
	store      *store.Client
	defaultTTL time.Duration
	logger     zerolog.Logger
}

// New creates a Cache over the given store adapter.
func New(st *store.Client, logger zerolog.Logger) *Cache {
	if st == nil {
		panic("store client cannot be nil")
	}
	return &Cache{
		store:      st,
		defaultTTL: DefaultTTL,
		logger:     logger,
	}
}

// SetDefaultTTL overrides the default TTL applied by Set.
func (c *Cache) SetDefaultTTL(ttl time.Duration) {
	if ttl > 0 {
		c.defaultTTL = ttl
	}
}

// DefaultTTL returns the TTL applied by Set.
func (c *Cache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Get retrieves and decodes the entry for key into dest, which must be
// a pointer. Returns false on miss, backend failure, or a corrupt
// entry; corrupt entries are never surfaced as errors.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	data, ok := c.store.Get(ctx, key)
	if !ok {
		CacheMisses.WithLabelValues(KeyDomain(key)).Inc()
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		CacheCorrupt.Inc()
		CacheMisses.WithLabelValues(KeyDomain(key)).Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("Corrupt cache entry, treating as miss")
		return false
	}

	CacheHits.WithLabelValues(KeyDomain(key)).Inc()
	return true
}

// Set encodes value and stores it under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL encodes value and stores it under key with an explicit
// TTL. The write fully replaces any prior entry and resets its TTL.
func (c *Cache) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		// Values are our own result structs; a marshal failure is a
		// programming error, but the cache still must not take down
		// the request path.
		c.logger.Error().Err(err).Str("key", key).Msg("Failed to encode cache value")
		return
	}

	c.store.SetExpiring(ctx, key, data, ttl)
	c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cache fill")
}

// Invalidate removes a single entry regardless of remaining TTL.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.store.Delete(ctx, key)
	CacheInvalidations.WithLabelValues("key").Inc()
	c.logger.Debug().Str("key", key).Msg("Cache invalidated")
}

// InvalidatePrefix removes every entry matching the pattern
// (e.g. "comments:*").
func (c *Cache) InvalidatePrefix(ctx context.Context, pattern string) {
	c.store.DeleteByPrefix(ctx, pattern)
	CacheInvalidations.WithLabelValues("prefix").Inc()
	c.logger.Debug().Str("pattern", pattern).Msg("Cache prefix invalidated")
}
