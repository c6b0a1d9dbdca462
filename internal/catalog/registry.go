package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/providers.yaml
var configFiles embed.FS

// Registry holds the chat and search providers known to the service.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	chat   []ChatProvider
	search []SearchProvider
}

// NewRegistry loads the embedded provider catalog
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/providers.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read provider catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from catalog YAML
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal provider catalog: %w", err)
	}
	if len(f.Chat) == 0 {
		return nil, fmt.Errorf("provider catalog lists no chat providers")
	}
	return &Registry{chat: f.Chat, search: f.Search}, nil
}

// ChatProvider returns a chat provider by ID
func (r *Registry) ChatProvider(id string) (*ChatProvider, error) {
	for i := range r.chat {
		if r.chat[i].ID == id {
			return &r.chat[i], nil
		}
	}
	return nil, fmt.Errorf("unknown chat provider: %s", id)
}

// DefaultModel returns the default model for a chat provider
func (r *Registry) DefaultModel(provider string) (string, error) {
	p, err := r.ChatProvider(provider)
	if err != nil {
		return "", err
	}
	model := p.DefaultModel()
	if model == "" {
		return "", fmt.Errorf("chat provider %s has no models", provider)
	}
	return model, nil
}

// ListChatProviders returns all chat providers (ordered as defined in YAML)
func (r *Registry) ListChatProviders() []ChatProvider {
	out := make([]ChatProvider, len(r.chat))
	copy(out, r.chat)
	return out
}

// SearchProvider returns a search provider by ID
func (r *Registry) SearchProvider(id string) (*SearchProvider, error) {
	for i := range r.search {
		if r.search[i].ID == id {
			return &r.search[i], nil
		}
	}
	return nil, fmt.Errorf("unknown search provider: %s", id)
}

// ListSearchProviders returns all search providers (ordered as defined in YAML)
func (r *Registry) ListSearchProviders() []SearchProvider {
	out := make([]SearchProvider, len(r.search))
	copy(out, r.search)
	return out
}
