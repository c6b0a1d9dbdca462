package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"askweb/internal/catalog"
	"askweb/internal/config"
	"askweb/internal/domain"
	"askweb/internal/service/llm/sessions"
)

func newFactory(t *testing.T, cfg *config.Config) *ProviderFactory {
	t.Helper()
	registry, err := catalog.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewProviderFactory(cfg, registry, nil)
}

func TestOpenSession_MissingKeys(t *testing.T) {
	factory := newFactory(t, &config.Config{})

	tests := []struct {
		provider string
		wantEnv  string
	}{
		{provider: config.ProviderGemini, wantEnv: "GEMINI_API_KEY"},
		{provider: config.ProviderAnthropic, wantEnv: "ANTHROPIC_API_KEY"},
		{provider: config.ProviderOpenRouter, wantEnv: "OPENROUTER_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			session, err := factory.OpenSession(context.Background(), tt.provider, "")
			if session != nil {
				t.Fatal("expected no session")
			}
			if !errors.Is(err, domain.ErrNotConfigured) {
				t.Fatalf("expected ErrNotConfigured, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantEnv) {
				t.Errorf("expected error to name %s, got %v", tt.wantEnv, err)
			}
		})
	}
}

func TestOpenSession_Lorem(t *testing.T) {
	factory := newFactory(t, &config.Config{ChatProvider: config.ProviderLorem})

	session, err := factory.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if session.Name() != "lorem" {
		t.Errorf("expected lorem session, got %s", session.Name())
	}
	lib, ok := session.(*sessions.LibrarySession)
	if !ok {
		t.Fatalf("expected *sessions.LibrarySession, got %T", session)
	}
	if lib.Model() != "lorem-fast" {
		t.Errorf("expected catalog default model, got %s", lib.Model())
	}
}

func TestOpenSession_UnknownProvider(t *testing.T) {
	factory := newFactory(t, &config.Config{})

	_, err := factory.OpenSession(context.Background(), "palm", "text-bison")
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestResolveModel(t *testing.T) {
	factory := newFactory(t, &config.Config{})

	tests := []struct {
		name     string
		provider string
		model    string
		want     string
		wantErr  bool
	}{
		{name: "catalog default", provider: "gemini", want: "gemini-2.5-flash"},
		{name: "explicit model", provider: "gemini", model: "gemini-2.5-pro", want: "gemini-2.5-pro"},
		{name: "provider prefix stripped", provider: "anthropic", model: "anthropic/claude-sonnet-4-5", want: "claude-sonnet-4-5"},
		{name: "openrouter passes through", provider: "openrouter", model: "anthropic/claude-haiku-4-5", want: "anthropic/claude-haiku-4-5"},
		{name: "unknown prefix passes through", provider: "gemini", model: "learnlm-2.0", want: "learnlm-2.0"},
		{name: "model of another provider", provider: "gemini", model: "claude-haiku-4-5", wantErr: true},
		{name: "no catalog entry", provider: "palm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := factory.resolveModel(tt.provider, tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveModel() = %q, want %q", got, tt.want)
			}
		})
	}
}
