package container

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/smart-itinerary-api/app/observability/metrics"
	"github.com/FACorreiaa/smart-itinerary-api/config"
	generativeAI "github.com/FACorreiaa/smart-itinerary-api/internal/api/generative_ai"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/itinerary"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/system"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Cache            *itinerary.Cache
	ItineraryHandler *itinerary.HandlerImpl
	SystemHandler    *system.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics) (*Container, error) {
	completer, err := NewCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Error("Failed to initialize completion backend", slog.Any("error", err))
		return nil, err
	}

	cache := itinerary.NewCache(cfg.Itinerary.CacheTTL, cfg.Itinerary.CacheCleanupInterval, logger, m)
	prompts := itinerary.NewPromptBuilder(itinerary.PricingRulesFromConfig(cfg.Itinerary.Pricing))
	itineraryService := itinerary.NewServiceImpl(completer, cache, prompts, cfg.LLM.Model, cfg.LLM.MaxOutputTokens, logger, m)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Cache:            cache,
		ItineraryHandler: itinerary.NewHandlerImpl(itineraryService, logger, m),
		SystemHandler:    system.NewHandlerImpl(cfg.Mode, logger),
	}, nil
}

// NewCompleter builds the completion backend selected by cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generativeAI.Completer, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		return generativeAI.NewOpenAIClient(cfg.BaseURL, cfg.APIKey, logger)
	case ProviderGemini:
		return generativeAI.NewGeminiClient(ctx, cfg.APIKey, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Cache != nil {
		c.Cache.Close()
	}
}
