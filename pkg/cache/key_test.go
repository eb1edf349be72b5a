package cache

import (
	"strings"
	"testing"
)

func TestNewsKey(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{"plain", "technology", "news:technology"},
		{"mixed case", "Technology", "news:technology"},
		{"padded", "  sports ", "news:sports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewsKey(tt.category); got != tt.want {
				t.Errorf("NewsKey(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestSummaryKey_Deterministic(t *testing.T) {
	url := "https://example.com/article/42"

	k1 := SummaryKey(url)
	k2 := SummaryKey(url)

	if k1 != k2 {
		t.Errorf("SummaryKey not deterministic: %q vs %q", k1, k2)
	}
	if !strings.HasPrefix(k1, "summary:") {
		t.Errorf("SummaryKey missing namespace: %q", k1)
	}
	if len(k1) != len("summary:")+32 {
		t.Errorf("SummaryKey hash length = %d, want 32 hex chars", len(k1)-len("summary:"))
	}
}

func TestSummaryKey_DistinctInputs(t *testing.T) {
	if SummaryKey("https://a.example") == SummaryKey("https://b.example") {
		t.Error("distinct URLs produced the same key")
	}
}

func TestSentimentKey_Deterministic(t *testing.T) {
	text := "The market rallied strongly after the announcement."

	if SentimentKey(text) != SentimentKey(text) {
		t.Error("SentimentKey not deterministic")
	}
	if SentimentKey(text) == SentimentKey(text+" ") {
		t.Error("SentimentKey should be sensitive to exact input")
	}
}

func TestCommentsKey(t *testing.T) {
	if got := CommentsKey("article-7"); got != "comments:article-7" {
		t.Errorf("CommentsKey = %q", got)
	}
}

func TestKeyDomain(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"news:technology", "news"},
		{"summary:abc123", "summary"},
		{"gnews:hits:today:2026-08-29", "gnews"},
		{"nonamespace", "other"},
	}

	for _, tt := range tests {
		if got := KeyDomain(tt.key); got != tt.want {
			t.Errorf("KeyDomain(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
