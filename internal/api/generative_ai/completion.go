package generativeAI

import (
	"context"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

// Completer issues a single schema-constrained completion call.
// Implementations never retry and wrap every failure in types.ErrUpstream.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

type CompletionRequest struct {
	Model           string
	SystemPrompt    string
	Prompt          string
	SchemaName      string
	Schema          *types.JSONSchema
	MaxOutputTokens int
}

type Completion struct {
	Text  string
	Model string
	Usage Usage
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
