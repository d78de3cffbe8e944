package types

import "time"

// ItineraryRequest is the validated body of POST /api/itinerary.
// Field order is part of the cache fingerprint.
type ItineraryRequest struct {
	City   string  `json:"city" validate:"required,notblank,max=100" example:"Lisbon"`
	Days   int     `json:"days" validate:"gt=0,lte=14" example:"2"`
	Budget float64 `json:"budget" validate:"gt=0,lte=50000" example:"400"`
}

// GeneratedItinerary mirrors the JSON the model is constrained to produce.
type GeneratedItinerary struct {
	Days []GeneratedDay `json:"days"`
}

type GeneratedDay struct {
	DayNumber int             `json:"dayNumber"`
	Plans     []GeneratedPlan `json:"plans"`
}

type GeneratedPlan struct {
	Time     string  `json:"time"`
	Activity string  `json:"activity"`
	Price    float64 `json:"price"`
}

// ItineraryResponse is the public response contract of POST /api/itinerary.
type ItineraryResponse struct {
	City     string    `json:"city" example:"Lisbon"`
	Days     int       `json:"days" example:"2"`
	DaysPlan []DayPlan `json:"daysPlan"`
}

type DayPlan struct {
	DayNumber int        `json:"dayNumber" example:"1"`
	Plans     []PlanItem `json:"plans"`
}

type PlanItem struct {
	Title          string  `json:"title" example:"Museum visit"`
	Description    string  `json:"description" example:"Scheduled at 09:00"`
	EstimatedPrice float64 `json:"estimatedPrice" example:"20"`
}

// HealthResponse is returned by GET /api/system/health.
type HealthResponse struct {
	Status      string    `json:"status" example:"Healthy"`
	Service     string    `json:"service" example:"Smart Itinerary API"`
	Environment string    `json:"environment" example:"development"`
	Timestamp   time.Time `json:"timestamp"`
}

// Response represents a generic API error envelope.
type Response struct {
	Success   bool   `json:"success" example:"false"`
	Error     string `json:"error,omitempty" example:"days must be between 1 and 14"`
	RequestID string `json:"request_id,omitempty"`
}
