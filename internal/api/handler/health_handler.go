package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ricirt/api-stub/internal/api/middleware"
	"github.com/ricirt/api-stub/internal/domain"
	"github.com/ricirt/api-stub/internal/service"
)

// HealthHandler serves the stub API's health endpoint.
type HealthHandler struct {
	svc    *service.HealthService
	logger *zap.Logger
}

func NewHealthHandler(svc *service.HealthService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, logger: logger}
}

// Health handles GET /health
//
// @Summary  API Healthcheck
// @Tags     health
// @Produce  json
// @Success  200  {object}  domain.APIResponse
// @Success  204  "No example payload configured"
// @Failure  406  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !accepts(r.Header.Get("Accept"), domain.ContentTypeJSON) {
		mapError(w, domain.ErrNotAcceptable)
		return
	}

	payload, err := h.svc.Health(r.Context()).Await(r.Context())
	if err != nil {
		// The client went away before the payload resolved; nobody is left to answer.
		h.logger.Debug("health request abandoned",
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		return
	}

	if payload == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}
