package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"
	"github.com/haowjy/meridian-llm-go/providers/openrouter"

	"askweb/internal/catalog"
	"askweb/internal/config"
	"askweb/internal/domain"
	llmSvc "askweb/internal/domain/services/llm"
	"askweb/internal/service/llm/sessions"
)

// ProviderFactory opens chat sessions for the configured provider
type ProviderFactory struct {
	config   *config.Config
	registry *catalog.Registry
	logger   *slog.Logger
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config, registry *catalog.Registry, logger *slog.Logger) *ProviderFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderFactory{
		config:   cfg,
		registry: registry,
		logger:   logger,
	}
}

// Open opens a session for CHAT_PROVIDER / CHAT_MODEL
func (f *ProviderFactory) Open(ctx context.Context) (llmSvc.ChatSession, error) {
	return f.OpenSession(ctx, f.config.ChatProvider, f.config.ChatModel)
}

// OpenSession opens a chat session on the given provider.
// An empty model selects the catalog default for the provider.
//
// Supported providers:
//   - "gemini" - Google Gemini via the genai SDK
//   - "anthropic" - Claude models via Anthropic API
//   - "openrouter" - Multiple providers via OpenRouter
//   - "lorem" - Mock provider for testing (no API key required)
func (f *ProviderFactory) OpenSession(ctx context.Context, providerName, model string) (llmSvc.ChatSession, error) {
	model, err := f.resolveModel(providerName, model)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("opening chat session", "provider", providerName, "model", model)

	switch providerName {
	case config.ProviderGemini:
		return sessions.NewGeminiSession(ctx, sessions.GeminiConfig{
			APIKey: f.config.GeminiAPIKey,
			Model:  model,
		})

	case config.ProviderAnthropic:
		if f.config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY environment variable not set", domain.ErrNotConfigured)
		}
		provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		return sessions.NewLibrarySession(providerName, provider, model), nil

	case config.ProviderOpenRouter:
		if f.config.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY environment variable not set", domain.ErrNotConfigured)
		}
		provider, err := openrouter.NewProvider(f.config.OpenRouterAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenRouter provider: %w", err)
		}
		return sessions.NewLibrarySession(providerName, provider, model), nil

	case config.ProviderLorem:
		// Lorem requires no API key - it generates lorem ipsum text
		return sessions.NewLibrarySession(providerName, lorem.NewProvider(), model), nil

	default:
		return nil, fmt.Errorf("%w: unsupported provider: %s", domain.ErrNotConfigured, providerName)
	}
}

// resolveModel fills in the catalog default and rejects models that belong to another provider.
func (f *ProviderFactory) resolveModel(providerName, model string) (string, error) {
	if model == "" {
		if f.registry == nil {
			return "", fmt.Errorf("%w: no model set for %s and no catalog loaded", domain.ErrNotConfigured, providerName)
		}
		def, err := f.registry.DefaultModel(providerName)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrNotConfigured, err)
		}
		return def, nil
	}

	// OpenRouter accepts any "vendor/model" id, so the prefix says nothing about the provider
	if providerName == config.ProviderOpenRouter {
		return model, nil
	}

	info, err := ParseModel(model)
	if err != nil {
		// Unknown prefixes are passed through; the provider will reject them if they are wrong
		return model, nil
	}
	if info.Provider == providerName {
		return info.Model, nil
	}
	return "", fmt.Errorf("%w: model %s belongs to provider %s, not %s",
		domain.ErrNotConfigured, model, info.Provider, providerName)
}
