package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/smart-itinerary-api/config"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

const SystemPrompt = "You are a professional travel planner. Be concise and realistic."

// PriceCeiling caps what the model may quote for one category of activity.
type PriceCeiling struct {
	Category string
	MaxPrice float64
}

// PricingRules are the business heuristics rendered into every itinerary prompt.
type PricingRules struct {
	Currency            string
	TargetSpendRatio    float64
	MinActivitiesPerDay int
	PriceCeilings       []PriceCeiling
	SurplusPriorities   []string
}

func DefaultPricingRules() PricingRules {
	return PricingRules{
		Currency:            "USD",
		TargetSpendRatio:    0.9,
		MinActivitiesPerDay: 3,
		PriceCeilings: []PriceCeiling{
			{Category: "Breakfast / coffee / snacks", MaxPrice: 30},
			{Category: "Lunch", MaxPrice: 60},
			{Category: "Dinner", MaxPrice: 100},
			{Category: "Premium dinner (Michelin / tasting menu)", MaxPrice: 300},
			{Category: "Museums / attractions", MaxPrice: 80},
			{Category: "Half-day guided tours", MaxPrice: 150},
			{Category: "Full-day guided tours", MaxPrice: 300},
			{Category: "Local transport per day", MaxPrice: 50},
		},
		SurplusPriorities: []string{
			"Fine dining",
			"Private tours",
			"Day trips",
			"Luxury experiences",
		},
	}
}

// PricingRulesFromConfig overlays the configured table on the defaults.
// Zero values and empty lists keep the default.
func PricingRulesFromConfig(cfg config.PricingConfig) PricingRules {
	rules := DefaultPricingRules()
	if cfg.Currency != "" {
		rules.Currency = cfg.Currency
	}
	if cfg.TargetSpendRatio > 0 {
		rules.TargetSpendRatio = cfg.TargetSpendRatio
	}
	if cfg.MinActivitiesPerDay > 0 {
		rules.MinActivitiesPerDay = cfg.MinActivitiesPerDay
	}
	if len(cfg.PriceCeilings) > 0 {
		rules.PriceCeilings = make([]PriceCeiling, 0, len(cfg.PriceCeilings))
		for _, c := range cfg.PriceCeilings {
			rules.PriceCeilings = append(rules.PriceCeilings, PriceCeiling{Category: c.Category, MaxPrice: c.MaxPrice})
		}
	}
	if len(cfg.SurplusPriorities) > 0 {
		rules.SurplusPriorities = append([]string(nil), cfg.SurplusPriorities...)
	}
	return rules
}

// PromptBuilder renders the user instruction for a request. Build has no side effects.
type PromptBuilder struct {
	Rules PricingRules
}

func NewPromptBuilder(rules PricingRules) PromptBuilder {
	return PromptBuilder{Rules: rules}
}

func (p PromptBuilder) Build(req types.ItineraryRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create an itinerary in %s.\n", req.City)
	fmt.Fprintf(&b, "The itinerary MUST contain EXACTLY %d days.\n\n", req.Days)

	b.WriteString("The total estimated price of all activities should aim to be close\n")
	fmt.Fprintf(&b, "to the total budget of %s %s, spending at least %.0f%%\n",
		formatAmount(req.Budget), p.Rules.Currency, p.Rules.TargetSpendRatio*100)
	b.WriteString("ONLY IF it is realistic.\n\n")

	b.WriteString("IMPORTANT:\n")
	b.WriteString("- Realism ALWAYS has priority over matching the budget.\n")
	b.WriteString("- Do NOT invent or inflate prices.\n")
	b.WriteString("- If the budget cannot be fully spent realistically, spend as much\n")
	b.WriteString("  as possible on valid premium activities and stop.\n\n")

	b.WriteString("Price constraints:\n")
	for _, c := range p.Rules.PriceCeilings {
		fmt.Fprintf(&b, "- %s: max %s %s\n", c.Category, formatAmount(c.MaxPrice), p.Rules.Currency)
	}
	b.WriteString("\n")

	b.WriteString("If extra budget remains, prioritize:\n")
	for _, s := range p.Rules.SurplusPriorities {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n")

	b.WriteString("Do NOT increase prices of basic activities to absorb budget.\n\n")

	fmt.Fprintf(&b, "The \"days\" array MUST contain exactly %d objects.\n", req.Days)
	b.WriteString("Each object must have:\n")
	b.WriteString("- dayNumber (starting at 1)\n")
	fmt.Fprintf(&b, "- plans (at least %d activities)\n\n", p.Rules.MinActivitiesPerDay)

	b.WriteString("Return only valid JSON.")
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
