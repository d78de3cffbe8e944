package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	appLogger "github.com/FACorreiaa/smart-itinerary-api/app/logger"
	"github.com/FACorreiaa/smart-itinerary-api/app/observability/metrics"
	"github.com/FACorreiaa/smart-itinerary-api/app/tracer"
	"github.com/FACorreiaa/smart-itinerary-api/config"
	"github.com/FACorreiaa/smart-itinerary-api/internal/container"
	"github.com/FACorreiaa/smart-itinerary-api/internal/router"
)

const serviceName = "smart-itinerary-api"

// @title           Smart Itinerary API
// @version         1.0
// @description     Generates budget-aware travel itineraries with an LLM completion backend.
// @BasePath        /api
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.NewLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	providers, err := tracer.InitTracingAndMetrics(serviceName)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	c, err := container.NewContainer(ctx, &cfg, logger, metrics.Get())
	if err != nil {
		logger.Error("Failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	handler := newHTTPHandler(&cfg, c, logger)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	var metricsSrv *http.Server
	if cfg.Handlers.Prometheus.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", tracer.MetricsHandler())
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
			Handler:           metricsMux,
			ReadHeaderTimeout: 5 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server",
			slog.String("address", serverAddress),
			slog.String("mode", cfg.Mode),
			slog.String("llm_provider", cfg.LLM.Provider),
			slog.String("llm_model", cfg.LLM.Model))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if metricsSrv != nil {
		g.Go(func() error {
			logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		if err := providers.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.Any("error", err))
		c.Close()
		os.Exit(1)
	}

	logger.Info("Application shut down complete.")
}

// newHTTPHandler wraps the application routes in the server-wide middleware chain.
func newHTTPHandler(cfg *config.Config, c *container.Container, logger *slog.Logger) http.Handler {
	routerConfig := &router.Config{
		ItineraryHandler: c.ItineraryHandler,
		SystemHandler:    c.SystemHandler,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		SwaggerEnabled:   cfg.Swagger.Enabled && cfg.IsDevelopment(),
		Logger:           logger,
	}
	routerConfig.RateLimit.Requests = cfg.Itinerary.RateLimit.Requests
	routerConfig.RateLimit.Window = cfg.Itinerary.RateLimit.Window

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	// the rate limiter keys on RemoteAddr, so forwarded headers are honored only behind a trusted proxy
	if cfg.Server.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.Server.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.Timeout))
	}
	r.Mount("/", router.SetupRouter(routerConfig))
	return r
}
