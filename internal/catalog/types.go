package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Model describes one chat model offered by a provider
type Model struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName   string `yaml:"display_name" json:"display_name"`
	ContextWindow int    `yaml:"context_window" json:"context_window,omitempty"`
	Default       bool   `yaml:"default" json:"default"`
}

// ChatProvider describes a chat provider and its models
type ChatProvider struct {
	ID          string  `yaml:"-" json:"id"`
	DisplayName string  `yaml:"display_name" json:"display_name"`
	APIKeyEnv   string  `yaml:"api_key_env" json:"api_key_env,omitempty"`
	Models      []Model `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// SearchProvider describes a web search backend
type SearchProvider struct {
	ID          string `yaml:"-" json:"id"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	RequiresKey bool   `yaml:"requires_key" json:"requires_key"`
	DefaultURL  string `yaml:"default_url" json:"default_url,omitempty"`
}

// DefaultModel returns the model flagged as default, or the first model.
func (p *ChatProvider) DefaultModel() string {
	for _, m := range p.Models {
		if m.Default {
			return m.ID
		}
	}
	if len(p.Models) > 0 {
		return p.Models[0].ID
	}
	return ""
}

// UnmarshalYAML preserves model order from the YAML mapping
func (p *ChatProvider) UnmarshalYAML(node *yaml.Node) error {
	type plain struct {
		DisplayName string `yaml:"display_name"`
		APIKeyEnv   string `yaml:"api_key_env"`
	}
	var base plain
	if err := node.Decode(&base); err != nil {
		return err
	}
	p.DisplayName = base.DisplayName
	p.APIKeyEnv = base.APIKeyEnv

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		models, err := decodeOrdered[Model](node.Content[i+1])
		if err != nil {
			return fmt.Errorf("models: %w", err)
		}
		p.Models = make([]Model, len(models))
		for j, kv := range models {
			kv.value.ID = kv.key
			p.Models[j] = kv.value
		}
		break
	}

	return nil
}

// file is the on-disk layout of providers.yaml
type file struct {
	Chat   []ChatProvider
	Search []SearchProvider
}

func (f *file) UnmarshalYAML(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "chat":
			entries, err := decodeOrdered[ChatProvider](node.Content[i+1])
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}
			for _, kv := range entries {
				kv.value.ID = kv.key
				f.Chat = append(f.Chat, kv.value)
			}
		case "search":
			entries, err := decodeOrdered[SearchProvider](node.Content[i+1])
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			for _, kv := range entries {
				kv.value.ID = kv.key
				f.Search = append(f.Search, kv.value)
			}
		}
	}
	return nil
}

type keyed[T any] struct {
	key   string
	value T
}

// decodeOrdered decodes a YAML mapping node into (key, value) pairs in document order.
func decodeOrdered[T any](node *yaml.Node) ([]keyed[T], error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at line %d", node.Line)
	}
	// Content alternates: key, value, key, value...
	out := make([]keyed[T], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v T
		if err := node.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", node.Content[i].Value, err)
		}
		out = append(out, keyed[T]{key: node.Content[i].Value, value: v})
	}
	return out, nil
}
