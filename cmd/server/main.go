package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oshilens/backend/config"
	httpDelivery "github.com/oshilens/backend/internal/delivery/http"
	"github.com/oshilens/backend/internal/domain"
	"github.com/oshilens/backend/internal/infrastructure/gemini"
	"github.com/oshilens/backend/internal/infrastructure/serper"
	"github.com/oshilens/backend/internal/infrastructure/tavily"
	"github.com/oshilens/backend/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg.Log)

	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting OshiLens backend v1.0.0")

	// Create context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	debug := cfg.Server.Environment == "development"

	// Initialize usecase layer; missing providers surface per request
	searchService := usecase.NewSearchService(
		newSearchProvider(cfg.Search),
		usecase.SearchServiceConfig{
			SimplifyKeywords:   cfg.Search.SimplifyKeywords,
			EnableDebugLogging: debug,
		},
	)
	classifier := usecase.NewClassificationService(
		newVisionModel(ctx, cfg.Gemini),
		usecase.ClassificationServiceConfig{EnableDebugLogging: debug},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, classifier, cfg.Upload.MaxImageBytes())
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

// setupLogger configures the global zerolog logger. Level and format were validated by config.Load.
func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newSearchProvider returns the configured search provider, or nil when its key is missing
func newSearchProvider(cfg config.SearchConfig) domain.SearchProvider {
	if cfg.APIKey() == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("search API key not configured; /api/v1/search will fail")
		return nil
	}

	log.Info().Str("provider", cfg.Provider).Int("numResults", cfg.NumResults).Dur("timeout", cfg.Timeout).Msg("search provider configured")

	if cfg.Provider == "tavily" {
		return tavily.NewClient(tavily.ClientOpts{
			APIKey:     cfg.TavilyAPIKey,
			BaseURL:    cfg.TavilyBaseURL,
			MaxResults: cfg.NumResults,
			Timeout:    cfg.Timeout,
		})
	}
	return serper.NewClient(serper.ClientOpts{
		APIKey:     cfg.SerperAPIKey,
		BaseURL:    cfg.SerperBaseURL,
		NumResults: cfg.NumResults,
		Timeout:    cfg.Timeout,
	})
}

// newVisionModel returns the Gemini client, or nil when it cannot be created
func newVisionModel(ctx context.Context, cfg config.GeminiConfig) domain.VisionModel {
	if cfg.APIKey == "" {
		log.Warn().Msg("gemini API key not configured; /api/v1/analyze will fail")
		return nil
	}

	client, err := gemini.NewClient(ctx, gemini.ClientOpts{
		APIKey:           cfg.APIKey,
		Model:            cfg.Model,
		StructuredOutput: cfg.StructuredOutput,
		BaseURL:          cfg.BaseURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize gemini client")
		return nil
	}

	log.Info().Str("model", cfg.Model).Bool("structuredOutput", cfg.StructuredOutput).Msg("gemini vision model initialized")
	return client
}
