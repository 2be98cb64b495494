package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderVenice    = "venice"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

type Config struct {
	Port        string `env:"PORT"        envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	RawLogLevel string `env:"LOG_LEVEL"   envDefault:"info"`
	LogLevel    slog.Level

	RedisURL string `env:"REDIS_URL" envDefault:"localhost:6379"`

	LLMProvider       string        `env:"LLM_PROVIDER"       envDefault:"mock"`
	ModelName         string        `env:"MODEL_NAME"`
	BackendModelName  string        `env:"BACKEND_MODEL_NAME"`
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL"`
	VeniceAPIKey      string        `env:"VENICE_API_KEY"`
	AnthropicAPIKey   string        `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"20s"`
	ContentRating     string        `env:"CONTENT_RATING"     envDefault:"PG13"`

	DefaultWorld string `env:"DEFAULT_WORLD" envDefault:"main"`
	SeedWorld    bool   `env:"SEED_WORLD"    envDefault:"false"`

	TracingEnabled bool   `env:"TRACING_ENABLED"             envDefault:"false"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.LogLevel = parseLogLevel(cfg.RawLogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected provider has what it needs.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when using openai provider"))
		}
	case ProviderVenice:
		if c.VeniceAPIKey == "" {
			errs = append(errs, errors.New("VENICE_API_KEY is required when using venice provider"))
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when using anthropic provider"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when using gemini provider"))
		}
	case ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("invalid LLM_PROVIDER %q (supported: %s)", c.LLMProvider, strings.Join(SupportedProviders(), ", ")))
	}

	if c.LLMProvider != ProviderMock && c.ModelName == "" {
		errs = append(errs, errors.New("MODEL_NAME is required"))
	}
	if c.GenerationTimeout <= 0 {
		errs = append(errs, errors.New("GENERATION_TIMEOUT must be positive"))
	}
	if c.TracingEnabled && c.OTLPEndpoint == "" {
		errs = append(errs, errors.New("OTEL_EXPORTER_OTLP_ENDPOINT is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}

// SupportedProviders lists the accepted LLM_PROVIDER values.
func SupportedProviders() []string {
	return []string{ProviderOpenAI, ProviderVenice, ProviderAnthropic, ProviderGemini, ProviderMock}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
