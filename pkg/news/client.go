package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	gnewsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsaura_gnews_requests_total",
		Help: "Total GNews API requests by outcome",
	}, []string{"status"})

	gnewsRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsaura_gnews_request_duration_seconds",
		Help:    "GNews API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})
)

// DefaultTimeout bounds every upstream request. A timeout is treated
// like any other upstream failure by the resolution pipeline.
const DefaultTimeout = 10 * time.Second

// Client calls the GNews top-headlines API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Config holds the upstream client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a GNews client.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gnews base url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gnews api key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// FetchByCategory fetches the current headlines for a category.
// Returns ErrNoArticles when the upstream answers with an empty list,
// and *UpstreamError for any transport or status failure. One attempt
// per call: retrying would burn quota.
func (c *Client) FetchByCategory(ctx context.Context, category string) ([]Article, error) {
	endpoint := fmt.Sprintf("%s/top-headlines", c.baseURL)

	params := url.Values{}
	params.Set("category", category)
	params.Set("lang", "en")
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build gnews request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	gnewsRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		gnewsRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Warn().Err(err).Str("category", category).Msg("GNews request failed")
		return nil, &UpstreamError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	gnewsRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status_code", resp.StatusCode).
			Str("category", category).
			Msg("GNews returned non-OK status")
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "unexpected status",
		}
	}

	var body categoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "decode response",
			Err:        err,
		}
	}

	if len(body.Articles) == 0 {
		return nil, ErrNoArticles
	}

	c.logger.Info().
		Str("category", category).
		Int("count", len(body.Articles)).
		Dur("duration", time.Since(start)).
		Msg("Fetched headlines from GNews")

	return body.Articles, nil
}
