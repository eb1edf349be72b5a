package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Cache keys are namespaced as "<domain>:<identifier>". Identifiers
// derived from free-form input (article URLs, sentiment text) are
// hashed so identical inputs always map to the same key regardless of
// request order, and so keys stay bounded in length.

// NewsKey returns the cache key for a news category listing.
func NewsKey(category string) string {
	return "news:" + strings.ToLower(strings.TrimSpace(category))
}

// SummaryKey returns the cache key for an article summary.
func SummaryKey(articleURL string) string {
	return "summary:" + fingerprint(articleURL)
}

// SentimentKey returns the cache key for a sentiment result.
func SentimentKey(text string) string {
	return "sentiment:" + fingerprint(text)
}

// CommentsKey returns the cache key for an article's comment list.
func CommentsKey(articleID string) string {
	return "comments:" + articleID
}

// CommentsPrefix matches every cached comment list.
const CommentsPrefix = "comments:*"

// KeyDomain returns the namespace portion of a key, used as a metric
// label.
func KeyDomain(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}

// fingerprint computes the content hash used in cache keys. MD5 is
// fine here: the digest is a cache fingerprint, not a security
// boundary.
func fingerprint(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
