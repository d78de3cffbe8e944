package itinerary

import "github.com/FACorreiaa/smart-itinerary-api/internal/types"

// SchemaName is the name the output schema is registered under with the backend.
const SchemaName = "Itinerary"

// BuildItinerarySchema returns the strict output schema for an itinerary of exactly days days.
// Every object level is closed with additionalProperties=false.
func BuildItinerarySchema(days int) *types.JSONSchema {
	plan := object(map[string]*types.JSONSchema{
		"time":     {Type: "string"},
		"activity": {Type: "string"},
		"price":    {Type: "number"},
	}, "time", "activity", "price")

	day := object(map[string]*types.JSONSchema{
		"dayNumber": {Type: "integer"},
		"plans":     {Type: "array", Items: plan},
	}, "dayNumber", "plans")

	return object(map[string]*types.JSONSchema{
		"days": {
			Type:     "array",
			MinItems: intPtr(days),
			MaxItems: intPtr(days),
			Items:    day,
		},
	}, "days")
}

func object(properties map[string]*types.JSONSchema, required ...string) *types.JSONSchema {
	closed := false
	return &types.JSONSchema{
		Type:                 "object",
		Properties:           properties,
		Required:             required,
		AdditionalProperties: &closed,
	}
}

func intPtr(v int) *int {
	return &v
}
