package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"askweb/internal/domain"
	llmSvc "askweb/internal/domain/services/llm"
)

// GeminiConfig holds what is needed to open a Gemini chat.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint (tests, proxies). Empty means the default.
	BaseURL string
}

// GeminiSession is a multi-turn Gemini chat. History is kept by the SDK's Chat.
type GeminiSession struct {
	chat  *genai.Chat
	model string
	mu    sync.Mutex // genai.Chat is not safe for concurrent sends
}

var _ llmSvc.ChatSession = (*GeminiSession)(nil)

// NewGeminiSession creates a Gemini client and opens a chat on the given model.
func NewGeminiSession(ctx context.Context, cfg GeminiConfig) (*GeminiSession, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY environment variable not set", domain.ErrNotConfigured)
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model cannot be empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chat, err := client.Chats.Create(ctx, cfg.Model, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open Gemini chat: %w", err)
	}

	return &GeminiSession{chat: chat, model: cfg.Model}, nil
}

// Name returns "gemini".
func (s *GeminiSession) Name() string { return "gemini" }

// Model returns the model the chat was opened with.
func (s *GeminiSession) Model() string { return s.model }

// SendMessage sends text as the next user turn and returns the model's text output.
func (s *GeminiSession) SendMessage(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("gemini send failed: %w", err)
	}
	if resp == nil {
		return "", domain.ErrEmptyResponse
	}

	out := resp.Text()
	if strings.TrimSpace(out) == "" {
		return "", domain.ErrEmptyResponse
	}
	return out, nil
}
