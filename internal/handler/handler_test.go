package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"askweb/internal/catalog"
	"askweb/internal/config"
	"askweb/internal/domain/models"
)

// fakeAssistant records inputs and returns a fixed reply.
type fakeAssistant struct {
	configured bool
	reply      models.Reply
	inputs     []string
}

func (f *fakeAssistant) Respond(ctx context.Context, userInput string) models.Reply {
	f.inputs = append(f.inputs, userInput)
	return f.reply
}

func (f *fakeAssistant) GenerateResponse(ctx context.Context, userInput string) string {
	return f.Respond(ctx, userInput).Text
}

func (f *fakeAssistant) Configured() bool { return f.configured }

func newTestMux(t *testing.T, assistant *fakeAssistant, cfg *config.Config) *http.ServeMux {
	t.Helper()
	registry, err := catalog.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	RegisterRoutes(mux,
		NewChatHandler(assistant, logger),
		NewProvidersHandler(cfg, registry, assistant, logger),
		NewHealthHandler(assistant),
	)
	return mux
}

func TestSendMessage(t *testing.T) {
	assistant := &fakeAssistant{configured: true, reply: models.Reply{
		Text:    "Go is a language [1]",
		Outcome: models.OutcomeAnswered,
		Sources: []models.SearchResult{{Title: "Go", Href: "https://go.dev"}},
	}}
	mux := newTestMux(t, assistant, &config.Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"  search: golang  "}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(assistant.inputs) != 1 || assistant.inputs[0] != "search: golang" {
		t.Errorf("expected trimmed message passed to assistant, got %q", assistant.inputs)
	}

	var body struct {
		Reply   string                `json:"reply"`
		Outcome string                `json:"outcome"`
		Sources []models.SearchResult `json:"sources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Reply != "Go is a language [1]" || body.Outcome != "answered" {
		t.Errorf("unexpected body %+v", body)
	}
	if len(body.Sources) != 1 || body.Sources[0].Href != "https://go.dev" {
		t.Errorf("unexpected sources %+v", body.Sources)
	}
}

func TestSendMessage_NonAnswerOutcomesAreStill200(t *testing.T) {
	assistant := &fakeAssistant{reply: models.Reply{Text: models.ReplyNotConfigured, Outcome: models.OutcomeNotConfigured}}
	mux := newTestMux(t, assistant, &config.Config{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"outcome":"not_configured"`) {
		t.Errorf("expected not_configured outcome, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"sources"`) {
		t.Errorf("expected sources omitted when empty, got %s", rec.Body.String())
	}
}

func TestSendMessage_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ``},
		{name: "missing message", body: `{}`},
		{name: "blank message", body: `{"message":"   "}`},
		{name: "too long", body: `{"message":"` + strings.Repeat("a", config.MaxMessageLength+1) + `"}`},
		{name: "unknown field", body: `{"message":"hi","stream":true}`},
		{name: "wrong type", body: `{"message":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := &fakeAssistant{configured: true}
			mux := newTestMux(t, assistant, &config.Config{})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("unexpected content type %q", ct)
			}
			if len(assistant.inputs) != 0 {
				t.Errorf("expected assistant not to be called")
			}
		})
	}
}

func TestSendMessage_MethodNotAllowed(t *testing.T) {
	mux := newTestMux(t, &fakeAssistant{}, &config.Config{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	for _, configured := range []bool{true, false} {
		mux := newTestMux(t, &fakeAssistant{configured: configured}, &config.Config{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		var body HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK || body.Status != "ok" || body.ChatConfigured != configured {
			t.Errorf("configured=%v: unexpected response %d %+v", configured, rec.Code, body)
		}
	}
}

func TestListProviders(t *testing.T) {
	cfg := &config.Config{
		ChatProvider:    config.ProviderAnthropic,
		AnthropicAPIKey: "sk-test",
		SearchProvider:  config.SearchBrave,
	}
	mux := newTestMux(t, &fakeAssistant{configured: true}, cfg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body ProvidersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ChatModel != "claude-haiku-4-5-20251001" {
		t.Errorf("expected catalog default model, got %q", body.ChatModel)
	}

	active := map[string]ChatProviderResponse{}
	for _, p := range body.Chat {
		active[p.ID] = p
	}
	if a := active["anthropic"]; !a.Active || !a.Configured || !a.HasAPIKey {
		t.Errorf("expected anthropic active and configured, got %+v", a)
	}
	if g := active["gemini"]; g.Active || g.HasAPIKey {
		t.Errorf("expected gemini inactive without key, got %+v", g)
	}
	if l := active["lorem"]; !l.HasAPIKey {
		t.Errorf("expected keyless lorem to count as having a key, got %+v", l)
	}

	var activeSearch []string
	for _, p := range body.Search {
		if p.Active {
			activeSearch = append(activeSearch, p.ID)
		}
	}
	if len(activeSearch) != 1 || activeSearch[0] != "brave" {
		t.Errorf("expected brave as the only active search provider, got %v", activeSearch)
	}
}

func TestMetricsRoute(t *testing.T) {
	mux := newTestMux(t, &fakeAssistant{}, &config.Config{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Errorf("expected default registry exposition, got %q", rec.Body.String())
	}
}
