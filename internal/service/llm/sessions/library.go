package sessions

import (
	"context"
	"fmt"
	"strings"
	"sync"

	llmprovider "github.com/haowjy/meridian-llm-go"

	"askweb/internal/domain"
	llmSvc "askweb/internal/domain/services/llm"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
	blockTypeText = "text"
)

// Generator is the part of a meridian-llm-go provider a session needs.
type Generator interface {
	GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error)
}

// LibrarySession turns a stateless meridian-llm-go provider into a chat session by
// resending the accumulated history with every message.
type LibrarySession struct {
	provider Generator
	name     string
	model    string

	mu      sync.Mutex
	history []llmprovider.Message
}

var _ llmSvc.ChatSession = (*LibrarySession)(nil)

// NewLibrarySession creates a session for the named provider and model.
func NewLibrarySession(name string, provider Generator, model string) *LibrarySession {
	return &LibrarySession{
		provider: provider,
		name:     name,
		model:    model,
	}
}

// Name returns the provider name.
func (s *LibrarySession) Name() string { return s.name }

// Model returns the model used for every request.
func (s *LibrarySession) Model() string { return s.model }

// SendMessage sends text with the prior turns and returns the concatenated text blocks
// of the reply. History only grows when the provider answered with text.
func (s *LibrarySession) SendMessage(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userMsg := textMessage(roleUser, text)
	messages := make([]llmprovider.Message, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, userMsg)

	resp, err := s.provider.GenerateResponse(ctx, &llmprovider.GenerateRequest{
		Messages: messages,
		Model:    s.model,
	})
	if err != nil {
		return "", fmt.Errorf("%s generate failed: %w", s.name, err)
	}
	if resp == nil {
		return "", domain.ErrEmptyResponse
	}

	out := collectText(resp.Blocks)
	if strings.TrimSpace(out) == "" {
		return "", domain.ErrEmptyResponse
	}

	s.history = append(s.history, userMsg, textMessage(roleAssistant, out))
	return out, nil
}

func textMessage(role, text string) llmprovider.Message {
	content := text
	return llmprovider.Message{
		Role: role,
		Blocks: []*llmprovider.Block{{
			BlockType:   blockTypeText,
			Sequence:    0,
			TextContent: &content,
		}},
	}
}

// collectText joins text blocks in sequence order; thinking and tool blocks are ignored.
func collectText(blocks []*llmprovider.Block) string {
	var parts []string
	for _, b := range blocks {
		if b == nil || b.BlockType != blockTypeText || b.TextContent == nil {
			continue
		}
		parts = append(parts, *b.TextContent)
	}
	return strings.Join(parts, "")
}
