// Package store provides a narrow, soft-failing adapter over the Redis
// backend. Callers never see backend errors: a failed or disabled
// backend behaves as an empty store and every operation degrades to a
// no-op. Failures are observable only through logs and metrics.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each Redis operation so a hung backend is
// indistinguishable from a miss instead of stalling the request.
const DefaultTimeout = 2 * time.Second

// Client is the process-wide Redis adapter. It is constructed once by
// the entry point, connected explicitly, and safe for concurrent use.
type Client struct {
	rdb     *redis.Client
	logger  zerolog.Logger
	timeout time.Duration

	mu        sync.Mutex
	connected bool
	disabled  bool
}

// New creates an unconnected adapter for the given Redis address.
func New(addr string, logger zerolog.Logger) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		logger:  logger,
		timeout: DefaultTimeout,
	}
}

// NewWithClient wraps an existing Redis client. Used by tests to
// substitute an in-memory backend.
func NewWithClient(rdb *redis.Client, logger zerolog.Logger) *Client {
	return &Client{
		rdb:     rdb,
		logger:  logger,
		timeout: DefaultTimeout,
	}
}

// SetTimeout overrides the per-operation time bound.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.timeout = timeout
	}
}

// Connect verifies the backend is reachable. Idempotent. On failure it
// logs, marks the adapter disabled, and returns normally: the system
// degrades to always-compute behavior instead of refusing to start.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.disabled = true
		storeDisabled.Set(1)
		c.logger.Error().Err(err).Msg("Redis unreachable, cache disabled")
		return
	}

	c.connected = true
	c.disabled = false
	storeDisabled.Set(0)
	c.logger.Info().Str("addr", c.rdb.Options().Addr).Msg("Connected to Redis")
}

// Close tears down the connection. Called once during process shutdown.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	return c.rdb.Close()
}

// Enabled reports whether the backend is usable.
func (c *Client) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disabled
}

// Get retrieves the raw payload for a key. Returns (nil, false) on
// miss, backend error, or disabled adapter.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			storeErrors.WithLabelValues("get").Inc()
			c.logger.Warn().Err(err).Str("key", key).Msg("Redis get failed")
		}
		return nil, false
	}
	return data, true
}

// SetExpiring stores a payload under key with the given TTL. A write
// fully replaces any prior value and restarts the TTL clock. Backend
// errors are logged and swallowed.
func (c *Client) SetExpiring(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if !c.Enabled() || ttl <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		storeErrors.WithLabelValues("set").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("Redis set failed")
	}
}

// Delete removes a single key. Idempotent, soft-fails.
func (c *Client) Delete(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		storeErrors.WithLabelValues("delete").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("Redis del failed")
	}
}

// DeleteByPrefix removes every key matching the pattern by enumerating
// the keyspace and deleting the matches as one batch. The KEYS scan is
// O(keyspace); acceptable here because the keyspace is small.
func (c *Client) DeleteByPrefix(ctx context.Context, pattern string) {
	if !c.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		storeErrors.WithLabelValues("keys").Inc()
		c.logger.Warn().Err(err).Str("pattern", pattern).Msg("Redis keys scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		storeErrors.WithLabelValues("delete").Inc()
		c.logger.Warn().Err(err).Str("pattern", pattern).Int("keys", len(keys)).Msg("Redis batch del failed")
	}
}
