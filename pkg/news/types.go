// Package news provides the GNews upstream client. Every successful
// call against this API consumes one unit of the daily quota tracked
// by pkg/quota; callers are expected to gate requests on the counter
// before invoking the client.
package news

import "time"

// Article is one entry of a category listing as returned by the
// upstream API.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      Source    `json:"source"`
}

// Source identifies the publisher of an article.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// categoryResponse is the upstream wire format for top-headlines.
type categoryResponse struct {
	TotalArticles int       `json:"totalArticles"`
	Articles      []Article `json:"articles"`
}
