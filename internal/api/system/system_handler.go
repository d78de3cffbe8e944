package system

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/FACorreiaa/smart-itinerary-api/internal/api"
	"github.com/FACorreiaa/smart-itinerary-api/internal/types"
)

const (
	StatusHealthy = "Healthy"
	ServiceName   = "Smart Itinerary API"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	environment string
	now         func() time.Time
	logger      *slog.Logger
}

func NewHandlerImpl(environment string, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		environment: environment,
		now:         time.Now,
		logger:      logger,
	}
}

// Health godoc
// @Summary      Health check
// @Description  Reports that the service is up
// @Tags         System
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /system/health [get]
func (h *HandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Health check")
	api.WriteJSONResponse(w, r, http.StatusOK, types.HealthResponse{
		Status:      StatusHealthy,
		Service:     ServiceName,
		Environment: h.environment,
		Timestamp:   h.now().UTC(),
	})
}
