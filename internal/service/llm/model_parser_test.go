package llm

import (
	"testing"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		name         string
		modelStr     string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{
			name:         "gemini flash",
			modelStr:     "gemini-2.5-flash",
			wantProvider: "gemini",
			wantModel:    "gemini-2.5-flash",
		},
		{
			name:         "gemma open model",
			modelStr:     "gemma-3-27b-it",
			wantProvider: "gemini",
			wantModel:    "gemma-3-27b-it",
		},
		{
			name:         "claude-haiku with version",
			modelStr:     "claude-haiku-4-5-20251001",
			wantProvider: "anthropic",
			wantModel:    "claude-haiku-4-5-20251001",
		},
		{
			name:         "upper case prefix",
			modelStr:     "Claude-Sonnet-4-5",
			wantProvider: "anthropic",
			wantModel:    "Claude-Sonnet-4-5",
		},
		{
			name:         "openrouter with full path",
			modelStr:     "openrouter/google/gemini-2.5-flash",
			wantProvider: "openrouter",
			wantModel:    "google/gemini-2.5-flash",
		},
		{
			name:         "lorem-fast model",
			modelStr:     "lorem-fast",
			wantProvider: "lorem",
			wantModel:    "lorem-fast",
		},
		{
			name:         "surrounding whitespace",
			modelStr:     "  lorem-slow ",
			wantProvider: "lorem",
			wantModel:    "lorem-slow",
		},
		{name: "empty string", modelStr: "", wantErr: true},
		{name: "unknown model prefix", modelStr: "unknown-model-123", wantErr: true},
		{name: "empty provider", modelStr: "/gemini-2.5-flash", wantErr: true},
		{name: "empty model", modelStr: "openrouter/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.modelStr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Provider != tt.wantProvider {
				t.Errorf("ParseModel() Provider = %v, want %v", got.Provider, tt.wantProvider)
			}
			if got.Model != tt.wantModel {
				t.Errorf("ParseModel() Model = %v, want %v", got.Model, tt.wantModel)
			}
		})
	}
}
