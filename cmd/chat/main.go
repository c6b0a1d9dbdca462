package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"askweb/internal/catalog"
	"askweb/internal/config"
	"askweb/internal/domain/models"
	"askweb/internal/service/assistant"
	serviceLLM "askweb/internal/service/llm"
	"askweb/internal/service/search"
	"askweb/internal/service/search/external"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const (
	logsDir     = "logs"
	logPrefix   = "chat"
	maxLogFiles = 10
)

const helpText = `Commands:
  /help              show this help
  /quit              exit
  search: <query>    search the web and answer from the results
Anything else is sent to the assistant as is.`

// setupLogger creates a logger that writes WARN+ to the console and everything to a log file
func setupLogger() (*slog.Logger, *os.File, error) {
	logFile, err := config.SetupLogFile(logsDir, logPrefix, maxLogFiles)
	if err != nil {
		return nil, nil, err
	}

	// Console stays quiet so replies are readable
	consoleHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})

	fileHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.Format("2006-01-02 15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return a
		},
	})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}}), logFile, nil
}

func main() {
	_ = godotenv.Load()

	logger, logFile, err := setupLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.Info("session started", "log_file", logFile.Name())

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("%sInvalid configuration: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry, err := catalog.NewRegistry()
	if err != nil {
		fmt.Printf("%sFailed to load provider catalog: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	var searchClient external.SearchClient
	if c, err := external.NewSearchClient(cfg); err != nil {
		logger.Warn("web search unavailable", "provider", cfg.SearchProvider, "error", err)
	} else {
		searchClient = c
	}

	svc := assistant.New(ctx,
		serviceLLM.NewProviderFactory(cfg, registry, logger),
		search.NewService(searchClient, logger),
		cfg.SearchMaxResults,
		logger,
	)

	fmt.Printf("%sAsk anything. Prefix with \"search:\" to answer from the web. /help for commands.%s\n", colorCyan, colorReset)
	if svc.Configured() {
		fmt.Printf("%sChatting via %s (%s)%s\n", colorBlue, svc.Provider(), svc.Model(), colorReset)
	} else {
		fmt.Printf("%sChat provider %q is not configured; check your API key.%s\n", colorYellow, cfg.ChatProvider, colorReset)
	}
	printSearchStatus(registry, cfg, searchClient != nil)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), config.MaxMessageLength*4)

	for {
		fmt.Printf("%s> %s", colorGreen, colorReset)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			logger.Info("session ended")
			return
		case "/help":
			fmt.Println(helpText)
			continue
		}

		reply := svc.Respond(ctx, line)
		printReply(reply)

		if ctx.Err() != nil {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("failed to read input", "error", err)
	}
	logger.Info("session ended")
}

// printSearchStatus names the active search backend using its catalog display name
func printSearchStatus(registry *catalog.Registry, cfg *config.Config, available bool) {
	name := cfg.SearchProvider
	if p, err := registry.SearchProvider(cfg.SearchProvider); err == nil {
		name = p.DisplayName
		if !available && p.RequiresKey && cfg.SearchAPIKey == "" {
			fmt.Printf("%sWeb search via %s needs SEARCH_API_KEY; \"search:\" will return no results.%s\n", colorYellow, name, colorReset)
			return
		}
	}
	if !available {
		fmt.Printf("%sWeb search via %s is unavailable; see the log file.%s\n", colorYellow, name, colorReset)
		return
	}
	fmt.Printf("%sSearching with %s%s\n", colorBlue, name, colorReset)
}

func printReply(reply models.Reply) {
	color := colorReset
	if !reply.OK() {
		color = colorYellow
	}
	fmt.Printf("%s%s%s\n", color, reply.Text, colorReset)

	for i, src := range reply.Sources {
		fmt.Printf("%s  [%d] %s%s\n", colorBlue, i+1, src.Href, colorReset)
	}
	fmt.Println()
}
