package generativeAI

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

var _ Completer = (*OpenAIClient)(nil)

// OpenAIClient talks to an OpenAI-compatible /chat/completions endpoint
// using strict json_schema structured outputs.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOpenAIClient(baseURL, apiKey string, logger *slog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is not set")
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 100 * time.Second},
		logger:     logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string            `json:"name"`
	Schema *types.JSONSchema `json:"schema"`
	Strict bool              `json:"strict"`
}

type chatRequest struct {
	Model               string          `json:"model"`
	Messages            []chatMessage   `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
			Refusal *string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenAIClient.Complete", trace.WithAttributes(
		attribute.String("llm.model", req.Model),
		attribute.Int("prompt.length", len(req.Prompt)),
	))
	defer span.End()

	completion, err := c.complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "OpenAI call failed")
		return nil, fmt.Errorf("%w: %w", types.ErrUpstream, err)
	}

	c.logger.DebugContext(ctx, "OpenAI completion received",
		slog.String("model", completion.Model),
		slog.Int("total_tokens", completion.Usage.TotalTokens))
	span.SetAttributes(attribute.Int("llm.tokens.total", completion.Usage.TotalTokens))
	span.SetStatus(codes.Ok, "Completion received")
	return completion, nil
}

func (c *OpenAIClient) complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	payload := chatRequest{
		Model:               req.Model,
		MaxCompletionTokens: req.MaxOutputTokens,
	}
	if req.SystemPrompt != "" {
		payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "user", Content: req.Prompt})
	if req.Schema != nil {
		payload.ResponseFormat = &responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: req.SchemaName, Schema: req.Schema, Strict: true},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		if resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, truncate(string(respBody), 512))
		}
		return nil, fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, cr.Error.Message)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("openai: status %d", resp.StatusCode)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}

	msg := cr.Choices[0].Message
	if msg.Refusal != nil && *msg.Refusal != "" {
		return nil, fmt.Errorf("openai: model refused: %s", *msg.Refusal)
	}

	completion := &Completion{Model: cr.Model}
	if completion.Model == "" {
		completion.Model = req.Model
	}
	if msg.Content != nil {
		completion.Text = *msg.Content
	}
	if cr.Usage != nil {
		completion.Usage = *cr.Usage
	}
	return completion, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
