package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/smart-itinerary-api/config"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

func TestPromptBuilder_Build(t *testing.T) {
	prompt := NewPromptBuilder(DefaultPricingRules()).Build(types.ItineraryRequest{City: "Lisbon", Days: 2, Budget: 400.5})

	for _, want := range []string{
		"Create an itinerary in Lisbon.",
		"MUST contain EXACTLY 2 days",
		"total budget of 400.5 USD, spending at least 90%",
		"Realism ALWAYS has priority over matching the budget.",
		"Do NOT invent or inflate prices.",
		"- Breakfast / coffee / snacks: max 30 USD",
		"- Lunch: max 60 USD",
		"- Dinner: max 100 USD",
		"- Premium dinner (Michelin / tasting menu): max 300 USD",
		"- Museums / attractions: max 80 USD",
		"- Half-day guided tours: max 150 USD",
		"- Full-day guided tours: max 300 USD",
		"- Local transport per day: max 50 USD",
		"Do NOT increase prices of basic activities to absorb budget.",
		"The \"days\" array MUST contain exactly 2 objects.",
		"plans (at least 3 activities)",
		"Return only valid JSON.",
	} {
		assert.Contains(t, prompt, want)
	}

	fine := strings.Index(prompt, "- Fine dining")
	private := strings.Index(prompt, "- Private tours")
	trips := strings.Index(prompt, "- Day trips")
	luxury := strings.Index(prompt, "- Luxury experiences")
	assert.True(t, fine >= 0 && fine < private && private < trips && trips < luxury, "surplus priorities out of order")
}

func TestPromptBuilder_Deterministic(t *testing.T) {
	b := NewPromptBuilder(DefaultPricingRules())
	req := types.ItineraryRequest{City: "Porto", Days: 1, Budget: 100}
	assert.Equal(t, b.Build(req), b.Build(req))
}

func TestPricingRulesFromConfig(t *testing.T) {
	t.Run("empty config keeps defaults", func(t *testing.T) {
		assert.Equal(t, DefaultPricingRules(), PricingRulesFromConfig(config.PricingConfig{}))
	})

	t.Run("overrides", func(t *testing.T) {
		rules := PricingRulesFromConfig(config.PricingConfig{
			Currency:            "EUR",
			TargetSpendRatio:    0.8,
			MinActivitiesPerDay: 4,
			PriceCeilings:       []config.PriceCeiling{{Category: "Pastel de nata", MaxPrice: 2}},
			SurplusPriorities:   []string{"Fado shows"},
		})

		assert.Equal(t, "EUR", rules.Currency)
		assert.Equal(t, []PriceCeiling{{Category: "Pastel de nata", MaxPrice: 2}}, rules.PriceCeilings)

		prompt := NewPromptBuilder(rules).Build(types.ItineraryRequest{City: "Lisbon", Days: 1, Budget: 50})
		assert.Contains(t, prompt, "spending at least 80%")
		assert.Contains(t, prompt, "- Pastel de nata: max 2 EUR")
		assert.Contains(t, prompt, "- Fado shows")
		assert.Contains(t, prompt, "plans (at least 4 activities)")
		assert.NotContains(t, prompt, "Lunch")
	})
}
