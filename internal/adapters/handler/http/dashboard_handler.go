package http

import (
	"net/http"

	"github.com/vidtube/api/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	stats, err := h.service.GetChannelStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, stats)
}

func (h *DashboardHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	videos, err := h.service.GetChannelVideos(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, videos)
}
