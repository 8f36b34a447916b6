package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/esports-hub/services"
)

type DashboardHandler struct {
	dashboard services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: s}
}

// Stats godoc
// @Summary Статистика платформы
// @Tags admin
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /admin/dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboard.GetStats(r.Context(), user)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}

// Ping godoc
// @Summary Проверка доступности сервера
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/ping [get]
func (h *DashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, jsonResponse{"pong": true, "server_time": time.Now().UTC()})
}

// DBStatus godoc
// @Summary Состояние базы данных
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/db-status [get]
func (h *DashboardHandler) DBStatus(w http.ResponseWriter, r *http.Request) {
	status := h.dashboard.SystemStatus(r.Context())
	code := http.StatusOK
	if status.Status != services.StatusOK {
		code = http.StatusServiceUnavailable
	}
	respond(w, r, code, jsonResponse{
		"database":   status.Database,
		"latency_ms": status.DatabaseLatencyMS,
		"checked_at": status.CheckedAt,
	})
}

// ServerInfo godoc
// @Summary Информация о сервере
// @Tags admin
// @Produce json
// @Success 200 {object} models.SystemStatus
// @Security BearerAuth
// @Router /admin/server-info [get]
func (h *DashboardHandler) ServerInfo(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.dashboard.SystemStatus(r.Context()))
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.dashboard.SystemStatus(r.Context())
	code := http.StatusOK
	if status.Status != services.StatusOK {
		code = http.StatusServiceUnavailable
	}
	respond(w, r, code, jsonResponse{"status": status.Status})
}
