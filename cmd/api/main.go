package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/legacy-engine/internal/config"
	"github.com/jwebster45206/legacy-engine/internal/handlers"
	"github.com/jwebster45206/legacy-engine/internal/logger"
	"github.com/jwebster45206/legacy-engine/internal/middleware"
	"github.com/jwebster45206/legacy-engine/internal/services"
	"github.com/jwebster45206/legacy-engine/internal/storage"
	"github.com/jwebster45206/legacy-engine/internal/telemetry"
	"github.com/jwebster45206/legacy-engine/pkg/engine"
	"github.com/jwebster45206/legacy-engine/pkg/generation"
	"github.com/jwebster45206/legacy-engine/pkg/seed"
)

const serviceName = "legacy-engine"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Legacy Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg, serviceName, log)
	if err != nil {
		log.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}

	llmService, closeLLM, err := newLLMService(cfg, log)
	if err != nil {
		log.Error("Failed to initialize LLM service", "error", err, "provider", cfg.LLMProvider)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	if cfg.SeedWorld {
		w, err := seed.Default()
		if err != nil {
			log.Error("Failed to load seed world", "error", err)
			os.Exit(1)
		}
		if _, err := seed.Load(storageCtx, store, w, log); err != nil {
			log.Error("Failed to seed world", "error", err)
			os.Exit(1)
		}
	}

	gen := generation.New(llmService, log,
		generation.WithTimeout(cfg.GenerationTimeout),
		generation.WithContentRating(cfg.ContentRating))
	eng := engine.New(store, gen, log, engine.WithDefaultWorld(cfg.DefaultWorld))

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/command", handlers.NewCommandHandler(eng, log))
	mux.Handle("/v1/gamestate", handlers.NewGameStateHandler(eng, log))
	mux.Handle("/v1/location", handlers.NewLocationHandler(eng, cfg.DefaultWorld, log))

	handler := middleware.Logger(mux)
	// a command can await two generation calls back to back
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
	if err := closeLLM(); err != nil {
		log.Error("Error closing LLM client", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Error flushing traces", "error", err)
	}

	log.Info("Server exited")
}

// newLLMService builds the configured provider. The returned close func is
// never nil.
func newLLMService(cfg *config.Config, log *slog.Logger) (services.LLMService, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		log.Info("Using OpenAI LLM provider", "base_url", cfg.OpenAIBaseURL)
		return services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ModelName, cfg.BackendModelName, log), noClose, nil
	case config.ProviderVenice:
		log.Info("Using Venice LLM provider")
		return services.NewVeniceService(cfg.VeniceAPIKey, cfg.ModelName, cfg.BackendModelName, log), noClose, nil
	case config.ProviderAnthropic:
		log.Info("Using Anthropic LLM provider")
		return services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, cfg.BackendModelName, log), noClose, nil
	case config.ProviderGemini:
		svc, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.ModelName, cfg.BackendModelName, log)
		if err != nil {
			return nil, noClose, err
		}
		log.Info("Using Gemini LLM provider")
		return svc, svc.Close, nil
	default:
		log.Warn("Using mock LLM provider; every generation falls back or returns canned text")
		return services.NewMockLLMAPI(), noClose, nil
	}
}
