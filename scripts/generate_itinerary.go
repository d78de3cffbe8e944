package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/smart-itinerary-api/app/logger"
	"github.com/FACorreiaa/smart-itinerary-api/config"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/itinerary"
	"github.com/FACorreiaa/smart-itinerary-api/internal/container"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

var (
	city     = flag.String("city", "Lisbon", "destination city")
	days     = flag.Int("days", 2, "number of days (1-14)")
	budget   = flag.Float64("budget", 400, "total budget")
	provider = flag.String("provider", "", "override llm.provider (openai or gemini)")
	model    = flag.String("model", "", "override llm.model")
	showOnly = flag.Bool("prompt", false, "print the prompt and schema without calling the backend")
)

// Generates one itinerary from the command line with the same pipeline the API uses.
func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *provider != "" {
		cfg.LLM.Provider = *provider
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}

	logger := appLogger.NewLogger(cfg.Mode)
	req := types.ItineraryRequest{City: *city, Days: *days, Budget: *budget}
	prompts := itinerary.NewPromptBuilder(itinerary.PricingRulesFromConfig(cfg.Itinerary.Pricing))

	if *showOnly {
		schema, _ := json.MarshalIndent(itinerary.BuildItinerarySchema(req.Days), "", "  ")
		fmt.Printf("System:\n%s\n\nUser:\n%s\n\nSchema:\n%s\n", itinerary.SystemPrompt, prompts.Build(req), schema)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	completer, err := container.NewCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Error("Failed to create completion backend", slog.Any("error", err))
		os.Exit(1)
	}

	cache := itinerary.NewCache(cfg.Itinerary.CacheTTL, cfg.Itinerary.CacheCleanupInterval, logger, nil)
	defer cache.Close()
	svc := itinerary.NewServiceImpl(completer, cache, prompts, cfg.LLM.Model, cfg.LLM.MaxOutputTokens, logger, nil)

	start := time.Now()
	resp, err := svc.GenerateItinerary(ctx, req)
	if err != nil {
		logger.Error("Failed to generate itinerary", slog.Any("error", err))
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
	logger.Info("Itinerary generated", slog.Duration("elapsed", time.Since(start)))
}
