package system

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

func TestHandlerImpl_Health(t *testing.T) {
	h := NewHandlerImpl("production", slog.New(slog.NewTextHandler(io.Discard, nil)))
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body types.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, types.HealthResponse{
		Status:      "Healthy",
		Service:     "Smart Itinerary API",
		Environment: "production",
		Timestamp:   fixed,
	}, body)
}

func TestHandlerImpl_Health_EmptyEnvironment(t *testing.T) {
	h := NewHandlerImpl("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"status": "Healthy",
		"service": "Smart Itinerary API",
		"environment": "",
		"timestamp": "2025-06-01T12:00:00Z"
	}`, rr.Body.String())
}
