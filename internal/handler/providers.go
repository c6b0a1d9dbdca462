package handler

import (
	"log/slog"
	"net/http"

	"askweb/internal/catalog"
	"askweb/internal/config"
	"askweb/internal/domain/services"
	"askweb/internal/httputil"
)

// ProvidersHandler lists the chat and search providers from the catalog
type ProvidersHandler struct {
	config    *config.Config
	registry  *catalog.Registry
	assistant services.Assistant
	logger    *slog.Logger
}

// NewProvidersHandler creates a new providers handler
func NewProvidersHandler(cfg *config.Config, registry *catalog.Registry, assistant services.Assistant, logger *slog.Logger) *ProvidersHandler {
	return &ProvidersHandler{
		config:    cfg,
		registry:  registry,
		assistant: assistant,
		logger:    logger,
	}
}

// ChatProviderResponse is a catalog chat provider plus its runtime state
type ChatProviderResponse struct {
	catalog.ChatProvider
	Active     bool `json:"active"`
	HasAPIKey  bool `json:"has_api_key"`
	Configured bool `json:"configured"`
}

// SearchProviderResponse is a catalog search provider plus its runtime state
type SearchProviderResponse struct {
	catalog.SearchProvider
	Active bool `json:"active"`
}

// ProvidersResponse is the body of GET /api/providers
type ProvidersResponse struct {
	ChatModel string                   `json:"chat_model"`
	Chat      []ChatProviderResponse   `json:"chat"`
	Search    []SearchProviderResponse `json:"search"`
}

// ListProviders returns every known provider and marks the active ones
// GET /api/providers
func (h *ProvidersHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	chatModel := h.config.ChatModel
	if chatModel == "" {
		if def, err := h.registry.DefaultModel(h.config.ChatProvider); err == nil {
			chatModel = def
		}
	}

	resp := ProvidersResponse{ChatModel: chatModel}

	for _, p := range h.registry.ListChatProviders() {
		active := p.ID == h.config.ChatProvider
		resp.Chat = append(resp.Chat, ChatProviderResponse{
			ChatProvider: p,
			Active:       active,
			HasAPIKey:    p.APIKeyEnv == "" || h.apiKeyFor(p.ID) != "",
			Configured:   active && h.assistant.Configured(),
		})
	}

	for _, p := range h.registry.ListSearchProviders() {
		resp.Search = append(resp.Search, SearchProviderResponse{
			SearchProvider: p,
			Active:         p.ID == h.config.SearchProvider,
		})
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

func (h *ProvidersHandler) apiKeyFor(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return h.config.GeminiAPIKey
	case config.ProviderAnthropic:
		return h.config.AnthropicAPIKey
	case config.ProviderOpenRouter:
		return h.config.OpenRouterAPIKey
	default:
		return ""
	}
}
