package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/smart-itinerary-api/app/observability/metrics"
	"github.com/FACorreiaa/smart-itinerary-api/internal/api"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GenerateItinerary(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.AppMetrics
}

func NewHandlerImpl(service Service, logger *slog.Logger, m *metrics.AppMetrics) *HandlerImpl {
	return &HandlerImpl{
		service:  service,
		validate: newValidator(),
		logger:   logger,
		metrics:  m,
	}
}

// GenerateItinerary godoc
// @Summary      Generate itinerary
// @Description  Generates a day-by-day itinerary for a city within a budget. Identical requests are served from cache for 6 hours.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body types.ItineraryRequest true "Itinerary request"
// @Success      200 {object} types.ItineraryResponse
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      429 {object} map[string]string "Too many requests"
// @Failure      499 {object} types.Response "Client closed request"
// @Failure      502 {object} types.Response "Completion backend failed"
// @Failure      504 {object} types.Response "Completion backend timed out"
// @Router       /itinerary [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		h.fail(ctx, w, r, fmt.Errorf("%w: %w", types.ErrValidation, err))
		return
	}
	if err := h.validateRequest(req); err != nil {
		l.WarnContext(ctx, "Invalid itinerary request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request")
		h.fail(ctx, w, r, err)
		return
	}

	span.SetAttributes(
		attribute.String("itinerary.city", req.City),
		attribute.Int("itinerary.days", req.Days),
	)
	l = l.With(slog.String("city", req.City), slog.Int("days", req.Days), slog.Float64("budget", req.Budget))

	resp, err := h.service.GenerateItinerary(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate itinerary")
		h.fail(ctx, w, r, err)
		return
	}

	h.metrics.RecordRequest(ctx, "success")
	l.InfoContext(ctx, "Itinerary generated", slog.Int("days_returned", len(resp.DaysPlan)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func (h *HandlerImpl) fail(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	status, outcome, message := classifyError(err)
	h.metrics.RecordRequest(ctx, outcome)
	api.ErrorResponse(w, r, status, message)
}

// classifyError maps a pipeline error to its HTTP status, metric outcome and public message.
// Cancellation is checked before upstream failures since upstream errors wrap their cause.
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), types.ErrValidation.Error()+": ")
	case errors.Is(err, context.Canceled):
		return api.StatusClientClosedRequest, "canceled", "Request was canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout", "The itinerary service timed out"
	case errors.Is(err, types.ErrMalformedUpstreamResponse):
		return http.StatusBadGateway, "malformed_upstream_response", "The itinerary generator returned an invalid response"
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway, "upstream_error", "The itinerary generator is unavailable"
	default:
		return http.StatusInternalServerError, "internal_error", "Internal server error"
	}
}

func (h *HandlerImpl) validateRequest(req types.ItineraryRequest) error {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", types.ErrValidation, err)
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, validationMessage(fe))
	}
	return fmt.Errorf("%w: %s", types.ErrValidation, strings.Join(messages, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "city":
		switch fe.Tag() {
		case "required", "notblank":
			return "city is required"
		}
		return "city must be at most 100 characters"
	case "days":
		return "days must be between 1 and 14"
	case "budget":
		return "budget must be greater than 0 and at most 50000"
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}
