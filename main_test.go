package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/smart-itinerary-api/config"
)

func testConfig(mode string) *config.Config {
	cfg := &config.Config{Mode: mode}
	cfg.Server.Timeout = 30 * time.Second
	cfg.Itinerary.RateLimit.Requests = 5
	cfg.Itinerary.RateLimit.Window = time.Minute
	cfg.Swagger.Enabled = true
	return cfg
}

func TestNewHTTPHandler_Swagger(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		enabled    bool
		wantStatus int
	}{
		{name: "development", mode: "development", enabled: true, wantStatus: http.StatusOK},
		{name: "production", mode: "production", enabled: true, wantStatus: http.StatusNotFound},
		{name: "development disabled", mode: "development", enabled: false, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.mode)
			cfg.Swagger.Enabled = tt.enabled
			handler := newStubHandler(t, cfg)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestNewHTTPHandler_RateLimitKeysOnPeerAddress(t *testing.T) {
	post := func(handler http.Handler, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(`{"city":"Lisbon","days":2,"budget":400}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.RemoteAddr = "192.0.2.1:41000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	t.Run("forwarded headers are ignored by default", func(t *testing.T) {
		handler := newStubHandler(t, testConfig("production"))
		for i := 0; i < 5; i++ {
			require.Equal(t, http.StatusOK, post(handler, fmt.Sprintf("203.0.113.%d", i)), "request %d", i+1)
		}
		assert.Equal(t, http.StatusTooManyRequests, post(handler, "203.0.113.99"))
	})

	t.Run("trusted proxy headers identify the client", func(t *testing.T) {
		cfg := testConfig("production")
		cfg.Server.TrustProxyHeaders = true
		handler := newStubHandler(t, cfg)
		for i := 0; i < 6; i++ {
			assert.Equal(t, http.StatusOK, post(handler, fmt.Sprintf("203.0.113.%d", i)), "request %d", i+1)
		}
	})
}
