package metrics

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// A nil *AppMetrics is valid and records nothing.
type AppMetrics struct {
	ItineraryRequestsTotal    metric.Int64Counter
	CacheHitsTotal            metric.Int64Counter
	CacheMissesTotal          metric.Int64Counter
	LLMTokensTotal            metric.Int64Counter
	LLMRequestDurationSeconds metric.Float64Histogram
	LLMErrorsTotal            metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ItineraryRequestsTotal, err = meter.Int64Counter(
		"itinerary_requests_total",
		metric.WithDescription("Total number of itinerary generation requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create itinerary_requests_total: %w", err)
	}

	m.CacheHitsTotal, err = meter.Int64Counter(
		"itinerary_cache_hits_total",
		metric.WithDescription("Itinerary requests served from the fingerprint cache"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create itinerary_cache_hits_total: %w", err)
	}

	m.CacheMissesTotal, err = meter.Int64Counter(
		"itinerary_cache_misses_total",
		metric.WithDescription("Itinerary requests that required a completion call"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create itinerary_cache_misses_total: %w", err)
	}

	m.LLMTokensTotal, err = meter.Int64Counter(
		"llm_tokens_total",
		metric.WithDescription("Tokens consumed by completion calls"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm_tokens_total: %w", err)
	}

	m.LLMRequestDurationSeconds, err = meter.Float64Histogram(
		"llm_request_duration_seconds",
		metric.WithDescription("Duration of completion calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm_request_duration_seconds: %w", err)
	}

	m.LLMErrorsTotal, err = meter.Int64Counter(
		"llm_errors_total",
		metric.WithDescription("Total number of failed completion calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm_errors_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("SmartItineraryAPI")
		m, err := New(meter)
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

func (m *AppMetrics) RecordRequest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Add(ctx, 1)
}

func (m *AppMetrics) RecordCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Add(ctx, 1)
}

// RecordCompletion records latency, token usage and failures of a completion call.
func (m *AppMetrics) RecordCompletion(ctx context.Context, model string, seconds float64, totalTokens int, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.LLMRequestDurationSeconds.Record(ctx, seconds, attrs)
	if err != nil {
		m.LLMErrorsTotal.Add(ctx, 1, attrs)
		return
	}
	m.LLMTokensTotal.Add(ctx, int64(totalTokens), attrs)
}
