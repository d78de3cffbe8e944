package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

func TestParseAndMap(t *testing.T) {
	raw := `{"days":[{"dayNumber":1,"plans":[{"time":"09:00","activity":"Museum visit","price":20}]}]}`

	generated, err := ParseGeneratedItinerary(raw)
	require.NoError(t, err)

	resp := MapItineraryResponse(types.ItineraryRequest{City: "Lisbon", Days: 1, Budget: 100}, generated)
	assert.Equal(t, &types.ItineraryResponse{
		City: "Lisbon",
		Days: 1,
		DaysPlan: []types.DayPlan{{
			DayNumber: 1,
			Plans: []types.PlanItem{{
				Title:          "Museum visit",
				Description:    "Scheduled at 09:00",
				EstimatedPrice: 20,
			}},
		}},
	}, resp)
}

func TestParseGeneratedItinerary(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantDays  int
		malformed bool
	}{
		{name: "plain", raw: `{"days":[{"dayNumber":1,"plans":[]}]}`, wantDays: 1},
		{name: "case insensitive", raw: `{"Days":[{"DayNumber":1,"Plans":[{"Time":"10:00","Activity":"Tram 28","Price":3}]}]}`, wantDays: 1},
		{name: "markdown fence", raw: "```json\n{\"days\":[]}\n```", wantDays: 0},
		{name: "not json", raw: `Sorry, I cannot help with that.`, malformed: true},
		{name: "empty", raw: `   `, malformed: true},
		{name: "null", raw: `null`, malformed: true},
		{name: "missing days", raw: `{"itinerary":[]}`, malformed: true},
		{name: "null days", raw: `{"days":null}`, malformed: true},
		{name: "array root", raw: `[{"dayNumber":1}]`, malformed: true},
		{name: "wrong type", raw: `{"days":[{"dayNumber":"one"}]}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGeneratedItinerary(tt.raw)
			if tt.malformed {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrMalformedUpstreamResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Days, tt.wantDays)
		})
	}
}

func TestParseGeneratedItinerary_CaseInsensitiveValues(t *testing.T) {
	got, err := ParseGeneratedItinerary(`{"DAYS":[{"dayNumber":2,"PLANS":[{"TIME":"20:00","activity":"Fado dinner","price":85.5}]}]}`)
	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.Equal(t, 2, got.Days[0].DayNumber)
	assert.Equal(t, types.GeneratedPlan{Time: "20:00", Activity: "Fado dinner", Price: 85.5}, got.Days[0].Plans[0])
}

func TestMapItineraryResponse_DivergentDayCount(t *testing.T) {
	generated := &types.GeneratedItinerary{Days: []types.GeneratedDay{
		{DayNumber: 1, Plans: nil},
	}}

	resp := MapItineraryResponse(types.ItineraryRequest{City: "Rome", Days: 3, Budget: 900}, generated)
	assert.Equal(t, 3, resp.Days)
	require.Len(t, resp.DaysPlan, 1)
	assert.NotNil(t, resp.DaysPlan[0].Plans)
	assert.Empty(t, resp.DaysPlan[0].Plans)
}
