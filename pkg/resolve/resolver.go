// Package resolve implements the fallback resolution pipeline: every
// operation runs cache lookup, quota gating where the upstream is
// budgeted, a staged acquisition path, and cache fill, and tags its
// result with a provenance value.
package resolve

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/newsaura/news-gateway/pkg/cache"
	"github.com/newsaura/news-gateway/pkg/news"
	"github.com/newsaura/news-gateway/pkg/nlp"
	"github.com/newsaura/news-gateway/pkg/quota"
)

var resolveResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "newsaura_resolve_results_total",
	Help: "Total pipeline results by operation and provenance",
}, []string{"operation", "provenance"})

// Acquisition thresholds.
const (
	// MinSuppliedContent is the minimum length for caller-supplied
	// article content to be summarized as-is.
	MinSuppliedContent = 120

	// MinScrapedContent is the minimum length scraped content must
	// reach before it is trusted; shorter extractions are usually
	// cookie walls or error pages.
	MinScrapedContent = 300

	// MinSentimentText is the minimum trimmed input length for
	// sentiment analysis.
	MinSentimentText = 10
)

// SummaryPlaceholder is the canned result produced when no acquisition
// stage yields usable content. It is cached like a real summary so a
// known-bad URL is not re-scraped within the TTL window.
const SummaryPlaceholder = "Summary unavailable: the article content could not be retrieved. " +
	"Please read the full story at the original source."

// NewsFetcher is the upstream listing dependency.
type NewsFetcher interface {
	FetchByCategory(ctx context.Context, category string) ([]news.Article, error)
}

// ContentExtractor is the article acquisition dependency.
type ContentExtractor interface {
	ArticleText(ctx context.Context, articleURL string) (string, error)
}

// NewsResult is a resolved category listing.
type NewsResult struct {
	Provenance Provenance     `json:"source"`
	Count      int            `json:"count"`
	Articles   []news.Article `json:"articles"`
}

// SummaryResult is a resolved article summary.
type SummaryResult struct {
	Provenance Provenance `json:"source"`
	Summary    string     `json:"summary"`
}

// SentimentResult is a resolved sentiment analysis.
type SentimentResult struct {
	Provenance Provenance          `json:"source"`
	Result     nlp.SentimentResult `json:"result"`
}

// Resolver orchestrates the pipeline for all three use cases.
type Resolver struct {
	cache     *cache.Cache
	counter   *quota.Counter
	fetcher   NewsFetcher
	extractor ContentExtractor
	summarize func(string) string
	analyze   func(string) nlp.SentimentResult
	ttl       time.Duration
	logger    zerolog.Logger
}

// New creates a Resolver. ttl applies to every result this pipeline
// caches, placeholders included.
func New(c *cache.Cache, counter *quota.Counter, fetcher NewsFetcher, extractor ContentExtractor, ttl time.Duration, logger zerolog.Logger) *Resolver {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Resolver{
		cache:     c,
		counter:   counter,
		fetcher:   fetcher,
		extractor: extractor,
		summarize: nlp.Summarize,
		analyze:   nlp.AnalyzeSentiment,
		ttl:       ttl,
		logger:    logger,
	}
}

// ResolveNewsCategory returns the article listing for a category.
//
// Pipeline: cache -> quota gate -> upstream fetch -> cache fill.
// The quota check runs only on a cache miss, and the counter records a
// hit only when the upstream call is actually made. There is no
// placeholder for news: an exhausted pipeline surfaces the upstream
// condition, with ErrNoArticles kept distinct from unreachability.
func (r *Resolver) ResolveNewsCategory(ctx context.Context, category string) (*NewsResult, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrMissingCategory
	}

	key := cache.NewsKey(category)

	var articles []news.Article
	if r.cache.Get(ctx, key, &articles) {
		resolveResultsTotal.WithLabelValues("news", string(FromCache)).Inc()
		return &NewsResult{
			Provenance: FromCache,
			Count:      len(articles),
			Articles:   articles,
		}, nil
	}

	allowed, msg := r.counter.CheckLimit(ctx)
	if !allowed {
		return nil, &QuotaExceededError{Message: msg}
	}
	if msg != "OK" {
		r.logger.Warn().Str("category", category).Msg(msg)
	}

	articles, err := r.fetcher.FetchByCategory(ctx, category)
	r.counter.Increment(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.SetWithTTL(ctx, key, articles, r.ttl)
	resolveResultsTotal.WithLabelValues("news", string(FromAPI)).Inc()

	return &NewsResult{
		Provenance: FromAPI,
		Count:      len(articles),
		Articles:   articles,
	}, nil
}

// ResolveSummary returns a summary for the article at articleURL.
//
// Acquisition is staged: caller-supplied content is preferred when it
// clears MinSuppliedContent; otherwise the URL is scraped, and scraped
// text below MinScrapedContent counts as a failed stage. When every
// stage fails the pipeline degrades to the canned placeholder instead
// of failing the request, and the placeholder is cached with the same
// TTL so the bad URL is not re-scraped until it expires.
func (r *Resolver) ResolveSummary(ctx context.Context, articleURL, content string) (*SummaryResult, error) {
	if strings.TrimSpace(articleURL) == "" {
		return nil, ErrMissingURL
	}

	key := cache.SummaryKey(articleURL)

	var cached string
	if r.cache.Get(ctx, key, &cached) {
		resolveResultsTotal.WithLabelValues("summary", string(FromCache)).Inc()
		return &SummaryResult{Provenance: FromCache, Summary: cached}, nil
	}

	text, ok := r.acquireContent(ctx, articleURL, content)
	if !ok {
		r.cache.SetWithTTL(ctx, key, SummaryPlaceholder, r.ttl)
		resolveResultsTotal.WithLabelValues("summary", string(PlaceholderResult)).Inc()
		r.logger.Info().Str("url", articleURL).Msg("All acquisition stages failed, serving placeholder summary")
		return &SummaryResult{Provenance: PlaceholderResult, Summary: SummaryPlaceholder}, nil
	}

	summary := r.summarize(text)
	r.cache.SetWithTTL(ctx, key, summary, r.ttl)
	resolveResultsTotal.WithLabelValues("summary", string(Generated)).Inc()

	return &SummaryResult{Provenance: Generated, Summary: summary}, nil
}

// acquireContent walks the summary acquisition stages and returns the
// first usable text. Stage failures are absorbed, never propagated.
func (r *Resolver) acquireContent(ctx context.Context, articleURL, content string) (string, bool) {
	if trimmed := strings.TrimSpace(content); len(trimmed) >= MinSuppliedContent {
		return trimmed, true
	}

	text, err := r.extractor.ArticleText(ctx, articleURL)
	if err != nil {
		r.logger.Debug().Err(err).Str("url", articleURL).Msg("Scrape stage failed")
		return "", false
	}
	if len(text) < MinScrapedContent {
		r.logger.Debug().Str("url", articleURL).Int("chars", len(text)).Msg("Scraped content too short")
		return "", false
	}
	return text, true
}

// ResolveSentiment returns the sentiment of text. Input shorter than
// MinSentimentText after trimming is rejected before any cache lookup.
func (r *Resolver) ResolveSentiment(ctx context.Context, text string) (*SentimentResult, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinSentimentText {
		return nil, ErrTextTooShort
	}

	key := cache.SentimentKey(text)

	var cached nlp.SentimentResult
	if r.cache.Get(ctx, key, &cached) {
		resolveResultsTotal.WithLabelValues("sentiment", string(FromCache)).Inc()
		return &SentimentResult{Provenance: FromCache, Result: cached}, nil
	}

	result := r.analyze(text)
	r.cache.SetWithTTL(ctx, key, result, r.ttl)
	resolveResultsTotal.WithLabelValues("sentiment", string(Computed)).Inc()

	return &SentimentResult{Provenance: Computed, Result: result}, nil
}
