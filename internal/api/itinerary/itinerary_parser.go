package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

type generatedEnvelope struct {
	Days *[]types.GeneratedDay `json:"days"`
}

// ParseGeneratedItinerary decodes the model output. Property names match case-insensitively.
func ParseGeneratedItinerary(raw string) (*types.GeneratedItinerary, error) {
	cleaned := cleanJSONResponse(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty content", types.ErrMalformedUpstreamResponse)
	}

	var env *generatedEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformedUpstreamResponse, err)
	}
	if env == nil {
		return nil, fmt.Errorf("%w: null itinerary", types.ErrMalformedUpstreamResponse)
	}
	if env.Days == nil {
		return nil, fmt.Errorf("%w: missing days", types.ErrMalformedUpstreamResponse)
	}
	return &types.GeneratedItinerary{Days: *env.Days}, nil
}

// MapItineraryResponse projects the model output onto the public contract.
// City and day count come from the request, not the model.
func MapItineraryResponse(req types.ItineraryRequest, generated *types.GeneratedItinerary) *types.ItineraryResponse {
	resp := &types.ItineraryResponse{
		City:     req.City,
		Days:     req.Days,
		DaysPlan: make([]types.DayPlan, 0, len(generated.Days)),
	}
	for _, day := range generated.Days {
		plans := make([]types.PlanItem, 0, len(day.Plans))
		for _, plan := range day.Plans {
			plans = append(plans, types.PlanItem{
				Title:          plan.Activity,
				Description:    "Scheduled at " + plan.Time,
				EstimatedPrice: plan.Price,
			})
		}
		resp.DaysPlan = append(resp.DaysPlan, types.DayPlan{
			DayNumber: day.DayNumber,
			Plans:     plans,
		})
	}
	return resp
}

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// markdown fences
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")

	return strings.TrimSpace(response)
}
