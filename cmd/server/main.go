package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"askweb/internal/auth"
	"askweb/internal/catalog"
	"askweb/internal/config"
	"askweb/internal/handler"
	"askweb/internal/middleware"
	"askweb/internal/observability"
	"askweb/internal/service/assistant"
	serviceLLM "askweb/internal/service/llm"
	"askweb/internal/service/search"
	"askweb/internal/service/search/external"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"chat_provider", cfg.ChatProvider,
		"search_provider", cfg.SearchProvider,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load provider catalog: %v", err)
	}

	// A missing search key disables search but not chat
	var searchClient external.SearchClient
	if c, err := external.NewSearchClient(cfg); err != nil {
		logger.Error("web search unavailable", "provider", cfg.SearchProvider, "error", err)
	} else {
		searchClient = c
	}
	searcher := search.NewService(searchClient, logger)

	factory := serviceLLM.NewProviderFactory(cfg, registry, logger)
	assistantSvc := assistant.New(ctx, factory, searcher, cfg.SearchMaxResults, logger)

	chatHandler := handler.NewChatHandler(assistantSvc, logger)
	providersHandler := handler.NewProvidersHandler(cfg, registry, assistantSvc, logger)
	healthHandler := handler.NewHealthHandler(assistantSvc)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, chatHandler, providersHandler, healthHandler)

	// Build middleware chain
	// Order: CORS → Recovery → RequestID → Auth → Metrics → Routes
	var h http.Handler = mux

	// Metrics wrap the mux directly so r.Pattern is visible after routing
	h = observability.MetricsMiddleware(h)

	if cfg.AuthEnabled() {
		verifier, err := auth.NewJWTVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		h = middleware.Auth(verifier, logger)(h)
	} else {
		logger.Warn("AUTH_JWKS_URL not set: API is unauthenticated")
	}

	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 15 * time.Second,
		// Search plus a research prompt can take a while on slower models
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "chat_configured", assistantSvc.Configured())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
