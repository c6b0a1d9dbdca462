package external

import (
	"fmt"
	"strings"

	"askweb/internal/config"
	"askweb/internal/domain"
)

// NewSearchClient creates the search client selected by cfg.SearchProvider.
func NewSearchClient(cfg *config.Config) (SearchClient, error) {
	switch cfg.SearchProvider {
	case config.SearchDuckDuckGo:
		return NewDuckDuckGoClient(cfg.SearchAPIURL, cfg.SearchTimeout), nil

	case config.SearchTavily:
		if strings.TrimSpace(cfg.SearchAPIKey) == "" {
			return nil, fmt.Errorf("%w: SEARCH_API_KEY is required for tavily", domain.ErrNotConfigured)
		}
		return NewTavilyClientWithConfig(cfg.SearchAPIKey, cfg.SearchAPIURL, cfg.SearchTimeout), nil

	case config.SearchBrave:
		if strings.TrimSpace(cfg.SearchAPIKey) == "" {
			return nil, fmt.Errorf("%w: SEARCH_API_KEY is required for brave", domain.ErrNotConfigured)
		}
		return NewBraveClient(cfg.SearchAPIKey, cfg.SearchAPIURL, cfg.SearchTimeout), nil

	case config.SearchSearXNG:
		if strings.TrimSpace(cfg.SearchAPIURL) == "" {
			return nil, fmt.Errorf("%w: SEARCH_API_URL is required for searxng", domain.ErrNotConfigured)
		}
		return NewSearXNGClient(cfg.SearchAPIURL, cfg.SearchTimeout), nil

	default:
		return nil, fmt.Errorf("%w: unsupported search provider %q", domain.ErrNotConfigured, cfg.SearchProvider)
	}
}
