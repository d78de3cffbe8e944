package generativeAI

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

func TestToGenaiSchema(t *testing.T) {
	two := 2
	closed := false
	in := &types.JSONSchema{
		Type: "object",
		Properties: map[string]*types.JSONSchema{
			"days": {
				Type:     "array",
				MinItems: &two,
				MaxItems: &two,
				Items: &types.JSONSchema{
					Type: "object",
					Properties: map[string]*types.JSONSchema{
						"dayNumber": {Type: "integer"},
						"price":     {Type: "number"},
					},
					Required:             []string{"dayNumber", "price"},
					AdditionalProperties: &closed,
				},
			},
		},
		Required:             []string{"days"},
		AdditionalProperties: &closed,
	}

	out := toGenaiSchema(in)
	require.NotNil(t, out)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"days"}, out.Required)
	assert.Equal(t, []string{"days"}, out.PropertyOrdering)

	days := out.Properties["days"]
	require.NotNil(t, days)
	assert.Equal(t, genai.TypeArray, days.Type)
	require.NotNil(t, days.MinItems)
	require.NotNil(t, days.MaxItems)
	assert.Equal(t, int64(2), *days.MinItems)
	assert.Equal(t, int64(2), *days.MaxItems)

	item := days.Items
	require.NotNil(t, item)
	assert.Equal(t, genai.TypeInteger, item.Properties["dayNumber"].Type)
	assert.Equal(t, genai.TypeNumber, item.Properties["price"].Type)
	assert.Equal(t, []string{"dayNumber", "price"}, item.PropertyOrdering)
}

func TestToGenaiSchema_Nil(t *testing.T) {
	assert.Nil(t, toGenaiSchema(nil))
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(CompletionRequest{
		SystemPrompt:    "You are a planner.",
		MaxOutputTokens: 1000,
		Schema:          &types.JSONSchema{Type: "object"},
	})

	assert.Equal(t, int32(1000), cfg.MaxOutputTokens)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ResponseSchema)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "You are a planner.", cfg.SystemInstruction.Parts[0].Text)
}
