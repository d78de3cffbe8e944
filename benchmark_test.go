package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/FACorreiaa/smart-itinerary-api/config"
	generativeAI "github.com/FACorreiaa/smart-itinerary-api/internal/api/generative_ai"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/itinerary"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/system"
	"github.com/FACorreiaa/smart-itinerary-api/internal/container"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

// stubCompleter answers instantly with a fixed itinerary
type stubCompleter struct{}

func (stubCompleter) Complete(ctx context.Context, req generativeAI.CompletionRequest) (*generativeAI.Completion, error) {
	return &generativeAI.Completion{
		Text:  lisbonCompletion,
		Model: req.Model,
		Usage: generativeAI.Usage{TotalTokens: 742},
	}, nil
}

// newStubHandler wires the full HTTP stack around stubCompleter.
func newStubHandler(tb testing.TB, cfg *config.Config) http.Handler {
	tb.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cache := itinerary.NewCache(itinerary.DefaultCacheTTL, time.Hour, logger, nil)
	tb.Cleanup(cache.Close)
	svc := itinerary.NewServiceImpl(stubCompleter{}, cache, itinerary.NewPromptBuilder(itinerary.DefaultPricingRules()), "gpt-4o-mini", 1000, logger, nil)

	c := &container.Container{
		Config:           cfg,
		Logger:           logger,
		Cache:            cache,
		ItineraryHandler: itinerary.NewHandlerImpl(svc, logger, nil),
		SystemHandler:    system.NewHandlerImpl(cfg.Mode, logger),
	}
	return newHTTPHandler(cfg, c, logger)
}

func setupBenchmarkHandler(b *testing.B) http.Handler {
	b.Helper()
	cfg := &config.Config{Mode: "benchmark"}
	cfg.Server.Timeout = 30 * time.Second
	// effectively unlimited so the limiter does not skew results
	cfg.Itinerary.RateLimit.Requests = 1 << 30
	cfg.Itinerary.RateLimit.Window = time.Minute
	return newStubHandler(b, cfg)
}

func BenchmarkGenerateItinerary_CacheHit(b *testing.B) {
	handler := setupBenchmarkHandler(b)
	body := `{"city":"Lisbon","days":2,"budget":400}`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}

func BenchmarkGenerateItinerary_CacheMiss(b *testing.B) {
	handler := setupBenchmarkHandler(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		body := fmt.Sprintf(`{"city":"Lisbon","days":2,"budget":%d}`, 100+i%49000)
		req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
	}
}

func BenchmarkHealth(b *testing.B) {
	handler := setupBenchmarkHandler(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))
	}
}

func BenchmarkFingerprint(b *testing.B) {
	req := types.ItineraryRequest{City: "Lisbon", Days: 2, Budget: 400}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := itinerary.Fingerprint(req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPromptBuild(b *testing.B) {
	builder := itinerary.NewPromptBuilder(itinerary.DefaultPricingRules())
	req := types.ItineraryRequest{City: "Lisbon", Days: 2, Budget: 400}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = builder.Build(req)
	}
}

func BenchmarkParseAndMap(b *testing.B) {
	req := types.ItineraryRequest{City: "Lisbon", Days: 2, Budget: 400}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		generated, err := itinerary.ParseGeneratedItinerary(lisbonCompletion)
		if err != nil {
			b.Fatal(err)
		}
		_ = itinerary.MapItineraryResponse(req, generated)
	}
}
