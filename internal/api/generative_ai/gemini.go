package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

var _ Completer = (*GeminiClient)(nil)

// GeminiClient completes prompts with the Gemini API.
type GeminiClient struct {
	client *genai.Client
	logger *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *slog.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client, logger: logger}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GeminiClient.Complete", trace.WithAttributes(
		attribute.String("llm.model", req.Model),
		attribute.Int("prompt.length", len(req.Prompt)),
	))
	defer span.End()

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), geminiConfig(req))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gemini call failed")
		return nil, fmt.Errorf("%w: gemini: generate content: %w", types.ErrUpstream, err)
	}
	if len(resp.Candidates) == 0 {
		err := fmt.Errorf("%w: gemini: no candidates in response", types.ErrUpstream)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response from Gemini")
		return nil, err
	}

	completion := &Completion{Text: resp.Text(), Model: req.Model}
	if resp.ModelVersion != "" {
		completion.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		completion.Usage = Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	g.logger.DebugContext(ctx, "Gemini completion received",
		slog.String("model", completion.Model),
		slog.Int("total_tokens", completion.Usage.TotalTokens))
	span.SetAttributes(attribute.Int("llm.tokens.total", completion.Usage.TotalTokens))
	span.SetStatus(codes.Ok, "Completion received")
	return completion, nil
}

func geminiConfig(req CompletionRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(req.MaxOutputTokens),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.Schema),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	return config
}

// toGenaiSchema converts a JSON schema to the Gemini OpenAPI subset.
// additionalProperties has no Gemini equivalent and is dropped; required order becomes property order.
func toGenaiSchema(s *types.JSONSchema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:     genaiType(s.Type),
		Required: s.Required,
		Items:    toGenaiSchema(s.Items),
	}
	if len(s.Required) > 0 {
		out.PropertyOrdering = s.Required
	}
	if s.MinItems != nil {
		out.MinItems = genai.Ptr(int64(*s.MinItems))
	}
	if s.MaxItems != nil {
		out.MaxItems = genai.Ptr(int64(*s.MaxItems))
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
