package services

import (
	"context"

	"askweb/internal/domain/models"
)

// WebSearcher runs a web search and returns normalized results.
// Implementations are fail-soft: provider failures are logged and yield an empty slice.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) []models.SearchResult
}
