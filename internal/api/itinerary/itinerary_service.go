package itinerary

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/smart-itinerary-api/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/smart-itinerary-api/internal/api/generative_ai"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

const defaultMaxOutputTokens = 1000

var _ Service = (*ServiceImpl)(nil)

// Service generates itineraries for validated requests.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
}

type ServiceImpl struct {
	completer       generativeAI.Completer
	cache           *Cache
	prompts         PromptBuilder
	model           string
	maxOutputTokens int
	logger          *slog.Logger
	metrics         *metrics.AppMetrics
}

func NewServiceImpl(
	completer generativeAI.Completer,
	cache *Cache,
	prompts PromptBuilder,
	model string,
	maxOutputTokens int,
	logger *slog.Logger,
	m *metrics.AppMetrics,
) *ServiceImpl {
	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultMaxOutputTokens
	}
	return &ServiceImpl{
		completer:       completer,
		cache:           cache,
		prompts:         prompts,
		model:           model,
		maxOutputTokens: maxOutputTokens,
		logger:          logger,
		metrics:         m,
	}
}

// GenerateItinerary returns a cached itinerary for req or generates one with a single completion call.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("itinerary.city", req.City),
		attribute.Int("itinerary.days", req.Days),
		attribute.Float64("itinerary.budget", req.Budget),
	))
	defer span.End()

	resp, err := s.cache.GetOrCompute(ctx, req, func(ctx context.Context) (*Generation, error) {
		return s.generate(ctx, req)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate itinerary")
		return nil, err
	}

	span.SetAttributes(attribute.Int("itinerary.days_returned", len(resp.DaysPlan)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return resp, nil
}

func (s *ServiceImpl) generate(ctx context.Context, req types.ItineraryRequest) (*Generation, error) {
	generationID := uuid.New()
	l := s.logger.With(
		slog.String("method", "generate"),
		slog.String("generation_id", generationID.String()),
	)

	start := time.Now()
	completion, err := s.completer.Complete(ctx, generativeAI.CompletionRequest{
		Model:           s.model,
		SystemPrompt:    SystemPrompt,
		Prompt:          s.prompts.Build(req),
		SchemaName:      SchemaName,
		Schema:          BuildItinerarySchema(req.Days),
		MaxOutputTokens: s.maxOutputTokens,
	})
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordCompletion(ctx, s.model, elapsed.Seconds(), 0, err)
		l.ErrorContext(ctx, "Completion request failed", slog.Any("error", err))
		return nil, err
	}
	s.metrics.RecordCompletion(ctx, completion.Model, elapsed.Seconds(), completion.Usage.TotalTokens, nil)

	l.InfoContext(ctx, "Completion request completed",
		slog.String("model", completion.Model),
		slog.Int("tokens_used", completion.Usage.TotalTokens),
		slog.String("city", req.City),
		slog.Int("days", req.Days),
		slog.Float64("budget", req.Budget),
		slog.Duration("latency", elapsed))

	generated, err := ParseGeneratedItinerary(completion.Text)
	if err != nil {
		l.ErrorContext(ctx, "Failed to parse itinerary", slog.Any("error", err))
		return nil, err
	}
	if len(generated.Days) != req.Days {
		l.WarnContext(ctx, "Model returned a different number of days than requested",
			slog.Int("requested", req.Days),
			slog.Int("returned", len(generated.Days)))
	}

	return &Generation{
		ID:          generationID,
		Response:    MapItineraryResponse(req, generated),
		Model:       completion.Model,
		TotalTokens: completion.Usage.TotalTokens,
	}, nil
}
