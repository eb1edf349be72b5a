// Package quota implements the daily call budget for the GNews
// upstream. The counter is persisted as an ordinary cache entry whose
// key embeds the current UTC date; a new date produces a cache miss
// (read as 0), which is how the midnight-UTC reset happens without any
// scheduled job.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newsaura/news-gateway/pkg/cache"
)

// Budget constants for the GNews free tier.
const (
	// MaxDailyHits is the hard daily ceiling on upstream calls.
	MaxDailyHits = 100

	// WarningThreshold is where CheckLimit starts reporting the
	// remaining budget (80% of the ceiling).
	WarningThreshold = 80

	// counterTTL keeps a day's entry alive for a full day from first
	// write. A counter created late in the day outlives the UTC
	// rollover by the same margin, which is harmless: the next day
	// counts under its own key.
	counterTTL = 24 * time.Hour

	baseKey = "gnews:hits:today"
)

// Status is the counter state returned by every operation. Remaining
// and Warning are derived, never stored.
type Status struct {
	TodayHits     int  `json:"today_hits"`
	RemainingHits int  `json:"remaining_hits"`
	Warning       bool `json:"warning"`
	MaxHits       int  `json:"max_hits"`
}

// Counter tracks upstream calls per UTC day.
//
// The read-increment-write sequence is not atomic across processes:
// two concurrent increments can both observe the same base and lose
// one update. That is an accepted tolerance: the budget is an advisory
// guardrail, not a billing meter. A stricter build would switch to
// Redis INCR+EXPIRE.
type Counter struct {
	cache  *cache.Cache
	logger zerolog.Logger
	now    func() time.Time
}

// NewCounter creates a counter over the typed cache.
func NewCounter(c *cache.Cache, logger zerolog.Logger) *Counter {
	return &Counter{
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// DailyKey returns the cache key for the current UTC day,
// e.g. "gnews:hits:today:2026-08-29".
func (c *Counter) DailyKey() string {
	return baseKey + ":" + c.now().UTC().Format("2006-01-02")
}

// Increment records one upstream call and returns the updated status.
// A missing entry counts as 0, so the first call of a new day creates
// the day's counter implicitly.
func (c *Counter) Increment(ctx context.Context) Status {
	key := c.DailyKey()

	var hits int
	c.cache.Get(ctx, key, &hits)
	hits++

	c.cache.SetWithTTL(ctx, key, hits, counterTTL)

	status := statusFor(hits)
	quotaHitsToday.Set(float64(hits))

	event := c.logger.Debug()
	if status.Warning {
		event = c.logger.Warn()
		quotaWarningsTotal.Inc()
	}
	event.
		Int("hits", status.TodayHits).
		Int("remaining", status.RemainingHits).
		Msg("GNews quota hit recorded")

	return status
}

// Peek returns the current status without mutating the counter.
func (c *Counter) Peek(ctx context.Context) Status {
	var hits int
	c.cache.Get(ctx, c.DailyKey(), &hits)
	return statusFor(hits)
}

// CheckLimit reports whether another upstream call is allowed.
// In the warning band the message names the remaining budget; once
// exhausted it names the next UTC midnight reset.
func (c *Counter) CheckLimit(ctx context.Context) (bool, string) {
	status := c.Peek(ctx)

	if status.TodayHits >= MaxDailyHits {
		quotaBlocksTotal.Inc()
		c.logger.Error().
			Int("hits", status.TodayHits).
			Msg("GNews daily quota exhausted, blocking upstream call")
		return false, fmt.Sprintf(
			"GNews API limit reached (%d/day), resets at %s",
			MaxDailyHits, c.nextReset().Format(time.RFC3339))
	}

	if status.Warning {
		return true, fmt.Sprintf(
			"WARNING: only %d GNews API hits remaining today",
			status.RemainingHits)
	}

	return true, "OK"
}

// Reset deletes the current day's entry. Administrative escape hatch
// for testing and operations.
func (c *Counter) Reset(ctx context.Context) Status {
	c.cache.Invalidate(ctx, c.DailyKey())
	quotaHitsToday.Set(0)
	c.logger.Info().Msg("GNews quota counter reset")
	return statusFor(0)
}

// nextReset returns the next UTC midnight.
func (c *Counter) nextReset() time.Time {
	now := c.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

func statusFor(hits int) Status {
	remaining := MaxDailyHits - hits
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		TodayHits:     hits,
		RemainingHits: remaining,
		Warning:       hits >= WarningThreshold,
		MaxHits:       MaxDailyHits,
	}
}
