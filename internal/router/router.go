package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/smart-itinerary-api/app/middleware"
	_ "github.com/FACorreiaa/smart-itinerary-api/docs"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/itinerary"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api/system"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler itinerary.Handler
	SystemHandler    system.Handler
	AllowedOrigins   []string
	RateLimit        struct {
		Requests int
		Window   time.Duration
	}
	SwaggerEnabled bool
	Logger         *slog.Logger
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request id, logger, recoverer) is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Heartbeat
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	if cfg.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/system/health", cfg.SystemHandler.Health)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.Logger))
			r.Post("/itinerary", cfg.ItineraryHandler.GenerateItinerary)
		})
	})

	return r
}
