package http

import (
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
)

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	health := h.services.HealthService.Check(r.Context())

	status := http.StatusOK
	if !health.IsUp() {
		logger.FromRequest(r).Warn().Any("components", health.Components).Msg("health check is down")
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, health, status)
}

func (h *Handler) getInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
