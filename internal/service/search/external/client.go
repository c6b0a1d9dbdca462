package external

import (
	"context"
	"time"
)

// SearchClient defines the interface for external search APIs.
// Implementations include DuckDuckGo, Tavily, Brave and SearXNG.
type SearchClient interface {
	// Search performs a web search and returns results in provider order.
	Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)

	// Name returns the provider name used in logs and metrics.
	Name() string
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	MaxResults int // Maximum number of results to return
}

// SearchResponse contains search results from external API.
type SearchResponse struct {
	Results   []SearchResult
	Query     string
	Timestamp time.Time
}

// SearchResult represents a single search result.
// Fields are passed through as the provider returned them (after HTML stripping);
// filtering of incomplete entries happens in the search service.
type SearchResult struct {
	Title   string  // Page title
	URL     string  // Page URL
	Snippet string  // Content snippet/description
	Score   float64 // Relevance score (if available)
}

const (
	// DefaultMaxResults is used when SearchOptions.MaxResults is not set
	DefaultMaxResults = 5
	// MaxResultsCap is the largest count any provider is asked for
	MaxResultsCap = 20
)

func clampMaxResults(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxResultsCap {
		return MaxResultsCap
	}
	return n
}
