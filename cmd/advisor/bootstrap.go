package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"sp500-advisor/internal/interfaces"
	"sp500-advisor/internal/llm/claude"
	"sp500-advisor/internal/llm/llmobs"
	"sp500-advisor/internal/llm/noop"
	"sp500-advisor/internal/llm/openai"
	"sp500-advisor/internal/logger"
	"sp500-advisor/internal/news/newsapi"
	"sp500-advisor/internal/news/newsobs"
	"sp500-advisor/internal/news/rss"
	"sp500-advisor/internal/news/scrape"
	"sp500-advisor/internal/notify/email"
	"sp500-advisor/internal/notify/stdout"
	"sp500-advisor/internal/price/twelvedata"
	"sp500-advisor/internal/price/yahoo"
	"sp500-advisor/internal/runlog"
	"sp500-advisor/internal/runner"
	"sp500-advisor/internal/store"
	"sp500-advisor/internal/trace"
)

// initializeSystem initializes the logger and tracer and compresses old
// run logs if retention is configured.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	compressOldLogs(context.Background())

	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn(ctx, "No config file found, using defaults", "path", path)
			return store.DefaultConfig(), nil
		}
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("ADVISOR_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := runlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// buildRunner wires the configured collaborators, each behind its
// observability middleware where one exists.
func buildRunner(ctx context.Context) *runner.Runner {
	creds := store.LoadCreds()
	return runner.New(cfg,
		initializePrice(ctx, cfg, creds),
		initializeNews(ctx, cfg, creds),
		initializeInterpreter(ctx, cfg),
		initializeNotifier(ctx, cfg, creds),
	)
}

func initializePrice(ctx context.Context, cfg *store.Config, creds store.Creds) interfaces.PriceSource {
	switch cfg.Price.Provider {
	case "TWELVEDATA":
		logger.Info(ctx, "Using Twelve Data price source", "symbol", cfg.Symbol)
		return twelvedata.New(cfg.Symbol, creds.TwelveAPIKey)
	default:
		logger.Info(ctx, "Using Yahoo Finance price source", "symbol", cfg.Symbol)
		return yahoo.New(cfg.Symbol)
	}
}

func initializeNews(ctx context.Context, cfg *store.Config, creds store.Creds) interfaces.NewsSource {
	var src interfaces.NewsSource
	switch cfg.News.Provider {
	case "RSS":
		logger.Info(ctx, "Using RSS news source")
		src = rss.New()
	case "SCRAPE":
		logger.Info(ctx, "Using web scraper news source")
		src = scrape.New()
	default:
		if creds.NewsAPIKey == "" {
			logger.Warn(ctx, "NEWS_API_KEY not set - NewsAPI requests will fail")
		}
		logger.Info(ctx, "Using NewsAPI news source")
		src = newsapi.New(creds.NewsAPIKey)
	}
	return newsobs.Wrap(src)
}

func initializeInterpreter(ctx context.Context, cfg *store.Config) interfaces.Interpreter {
	var interp interfaces.Interpreter
	switch cfg.LLM.Provider {
	case "OPENAI":
		interp = openai.New(cfg)
	case "CLAUDE":
		interp = claude.New(cfg)
	default:
		interp = noop.New()
		logger.Warn(ctx, "No LLM provider configured - using Noop interpreter (always HOLD)")
	}
	return llmobs.Wrap(interp)
}

func initializeNotifier(ctx context.Context, cfg *store.Config, creds store.Creds) interfaces.Notifier {
	switch cfg.Notify.Provider {
	case "EMAIL":
		logger.Info(ctx, "Using email notifier", "smtp_host", cfg.Notify.SMTPHost)
		return email.New(cfg, creds)
	default:
		logger.Info(ctx, "Using stdout notifier")
		return stdout.New()
	}
}
