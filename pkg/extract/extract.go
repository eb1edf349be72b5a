// Package extract fetches an article URL and reduces the page to its
// best-effort plain-text body. It does no caching of its own; the
// resolution pipeline caches one layer up.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// DefaultTimeout bounds a scrape. Slow targets count as failed
// acquisition stages, not errors.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a page is read. Article bodies fit
// comfortably; anything larger is boilerplate we don't want anyway.
const maxBodyBytes = 2 << 20

// Extractor acquires plain text from article URLs.
type Extractor struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates an Extractor with the given timeout.
func New(timeout time.Duration, logger zerolog.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ArticleText fetches the URL and extracts the page's visible text.
func (e *Extractor) ArticleText(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", "news-gateway/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Debug().Err(err).Str("url", articleURL).Msg("Article fetch failed")
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch article: status %d", resp.StatusCode)
	}

	text := TextFromHTML(io.LimitReader(resp.Body, maxBodyBytes))
	if text == "" {
		return "", fmt.Errorf("no text content at %s", articleURL)
	}

	e.logger.Debug().Str("url", articleURL).Int("chars", len(text)).Msg("Extracted article text")
	return text, nil
}

// skipElements are non-content containers whose text is discarded.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"iframe":   true,
	"form":     true,
}

// TextFromHTML reduces an HTML document to whitespace-normalized
// visible text.
func TextFromHTML(r io.Reader) string {
	tokenizer := html.NewTokenizer(r)

	var parts []string
	depth := 0 // nesting depth inside skipped elements

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input: return what we have.
			return strings.Join(parts, " ")

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skipElements[string(name)] {
				depth++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skipElements[string(name)] && depth > 0 {
				depth--
			}

		case html.TextToken:
			if depth > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
}
