package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"askweb/internal/config"
	"askweb/internal/domain/models"
	"askweb/internal/domain/services"
	"askweb/internal/observability"
	"askweb/internal/service/search/external"
)

// DefaultMaxResults is the result count used when a caller passes a value below 1.
const DefaultMaxResults = config.DefaultSearchResults

// Service is the fail-soft web searcher. Provider failures never reach the caller:
// they are logged once and turned into an empty result slice.
type Service struct {
	client external.SearchClient
	logger *slog.Logger
}

var _ services.WebSearcher = (*Service)(nil)

// NewService creates a search service over the given client.
// A nil client is allowed and makes every search fail soft.
func NewService(client external.SearchClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Search issues one request to the provider and returns the well-formed results in
// provider order. maxResults < 1 selects DefaultMaxResults; values above
// config.MaxSearchResults are capped.
func (s *Service) Search(ctx context.Context, query string, maxResults int) []models.SearchResult {
	results, err := s.search(ctx, query, normalizeMaxResults(maxResults))
	if err != nil {
		s.logger.Error("web search failed",
			"provider", s.providerName(),
			"query", query,
			"error", err,
		)
		observability.SearchRequestsTotal.WithLabelValues(s.providerName(), "error").Inc()
		return []models.SearchResult{}
	}

	if len(results) == 0 {
		s.logger.Warn("web search returned no usable results",
			"provider", s.providerName(),
			"query", query,
		)
		observability.SearchRequestsTotal.WithLabelValues(s.providerName(), "empty").Inc()
		return results
	}

	observability.SearchRequestsTotal.WithLabelValues(s.providerName(), "ok").Inc()
	return results
}

func (s *Service) search(ctx context.Context, query string, maxResults int) (results []models.SearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, fmt.Errorf("search provider panicked: %v", r)
		}
	}()

	if s.client == nil {
		return nil, errors.New("no search provider configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is empty")
	}

	resp, err := s.client.Search(ctx, query, external.SearchOptions{MaxResults: maxResults})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("provider returned no response")
	}

	return normalize(resp.Results, maxResults), nil
}

// normalize keeps entries with both a title and a link, preserving order.
// Title and link are trimmed; the body is kept as the provider returned it.
func normalize(raw []external.SearchResult, limit int) []models.SearchResult {
	results := make([]models.SearchResult, 0, min(len(raw), limit))
	for _, r := range raw {
		if len(results) >= limit {
			break
		}
		title := strings.TrimSpace(r.Title)
		href := strings.TrimSpace(r.URL)
		if title == "" || href == "" {
			continue
		}
		results = append(results, models.SearchResult{
			Title: title,
			Href:  href,
			Body:  r.Snippet,
		})
	}
	return results
}

func normalizeMaxResults(n int) int {
	if n < 1 {
		return DefaultMaxResults
	}
	if n > config.MaxSearchResults {
		return config.MaxSearchResults
	}
	return n
}

func (s *Service) providerName() string {
	if s.client == nil {
		return "none"
	}
	return s.client.Name()
}
