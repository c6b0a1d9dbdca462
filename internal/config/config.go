package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Chat provider names
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderLorem      = "lorem"
)

// Search provider names
const (
	SearchDuckDuckGo = "duckduckgo"
	SearchTavily     = "tavily"
	SearchBrave      = "brave"
	SearchSearXNG    = "searxng"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Chat configuration
	ChatProvider     string
	ChatModel        string // Empty means the catalog default for ChatProvider
	GeminiAPIKey     string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	// Search configuration
	SearchProvider   string
	SearchAPIKey     string
	SearchAPIURL     string
	SearchMaxResults int
	SearchTimeout    time.Duration
	// Auth is enabled when a JWKS URL is set
	AuthJWKSURL string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// Chat configuration
		ChatProvider:     strings.ToLower(getEnv("CHAT_PROVIDER", ProviderGemini)),
		ChatModel:        getEnv("CHAT_MODEL", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		// Search configuration
		SearchProvider:   strings.ToLower(getEnv("SEARCH_PROVIDER", SearchDuckDuckGo)),
		SearchAPIKey:     getEnv("SEARCH_API_KEY", ""),
		SearchAPIURL:     getEnv("SEARCH_API_URL", ""),
		SearchMaxResults: getEnvInt("SEARCH_MAX_RESULTS", DefaultSearchResults),
		SearchTimeout:    getEnvDuration("SEARCH_TIMEOUT", 15*time.Second),
		AuthJWKSURL:      getEnv("AUTH_JWKS_URL", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// Validate checks the configuration for values that can never work.
// Missing API keys are not errors here: the assistant degrades instead of refusing to start.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.In("dev", "test", "prod")),
		validation.Field(&c.ChatProvider,
			validation.Required,
			validation.In(ProviderGemini, ProviderAnthropic, ProviderOpenRouter, ProviderLorem),
		),
		validation.Field(&c.SearchProvider,
			validation.Required,
			validation.In(SearchDuckDuckGo, SearchTavily, SearchBrave, SearchSearXNG),
		),
		validation.Field(&c.SearchAPIURL, is.URL),
		validation.Field(&c.SearchMaxResults, validation.Required, validation.Min(1), validation.Max(MaxSearchResults)),
		validation.Field(&c.SearchTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.AuthJWKSURL, is.URL),
	)
}

// ChatAPIKey returns the API key for the configured chat provider.
func (c *Config) ChatAPIKey() string {
	switch c.ChatProvider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	default:
		return ""
	}
}

// AuthEnabled reports whether bearer token auth is enforced on the API.
func (c *Config) AuthEnabled() bool {
	return c.AuthJWKSURL != ""
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
