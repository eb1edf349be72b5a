// Package testutil provides testing utilities for the news gateway.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior of the mock upstream for one
// category.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockGNews is a configurable mock GNews server for testing.
type MockGNews struct {
	server    *httptest.Server
	mu        sync.RWMutex
	responses map[string]MockResponse

	// Tracking
	RequestCount int
	LastCategory string
	LastAPIKey   string
}

// NewMockGNews creates a mock GNews server. Callers must Close it.
func NewMockGNews() *MockGNews {
	mock := &MockGNews{
		responses: make(map[string]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		mock.mu.Lock()
		mock.RequestCount++
		mock.LastCategory = category
		mock.LastAPIKey = r.URL.Query().Get("apikey")
		mock.mu.Unlock()

		mock.mu.RLock()
		resp, exists := mock.responses[category]
		mock.mu.RUnlock()

		if !exists {
			// Default: a valid but empty listing.
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"totalArticles":0,"articles":[]}`)
			return
		}

		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.StatusCode != 0 {
			w.WriteHeader(resp.StatusCode)
		}
		fmt.Fprint(w, resp.Body)
	}))

	return mock
}

// URL returns the mock server's base URL.
func (m *MockGNews) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockGNews) Close() {
	m.server.Close()
}

// SetResponse configures the response for a category.
func (m *MockGNews) SetResponse(category string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[category] = resp
}

// SetArticles configures a 200 response carrying the given articles
// JSON array for a category. totalArticles reports the upstream's
// full result-set size, not the page length.
func (m *MockGNews) SetArticles(category, articlesJSON string) {
	m.SetResponse(category, MockResponse{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"totalArticles":100,"articles":%s}`, articlesJSON),
	})
}

// Requests returns the number of requests served so far.
func (m *MockGNews) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}
