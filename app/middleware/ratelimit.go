package appMiddleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

// RateLimitMessage is the literal error returned with 429 responses.
const RateLimitMessage = "Too many requests. Please try again later."

// RateLimit rejects a client IP that exceeds requests within a fixed window.
// Rejected requests are answered immediately, nothing is queued.
func RateLimit(requests int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitCounter(newFixedWindowCounter(window)),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.WarnContext(r.Context(), "Rate limit exceeded",
				slog.Any("error", types.ErrRateLimited),
				slog.String("req_id", middleware.GetReqID(r.Context())),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": RateLimitMessage})
		}),
	)
}

var _ httprate.LimitCounter = (*fixedWindowCounter)(nil)

// fixedWindowCounter keeps httprate's in-memory store but never reports the
// previous window, so every window starts with a full allowance.
type fixedWindowCounter struct {
	httprate.LimitCounter
}

func newFixedWindowCounter(window time.Duration) *fixedWindowCounter {
	return &fixedWindowCounter{LimitCounter: httprate.NewLocalLimitCounter(window)}
}

func (c *fixedWindowCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	curr, _, err := c.LimitCounter.Get(key, currentWindow, previousWindow)
	return curr, 0, err
}
