package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	healthMessage     = "Contact API is running"
	healthPingTimeout = 2 * time.Second
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.checkStorage && h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			slog.WarnContext(r.Context(), "storage ping failed", "error", err)
			writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{
				Status:  "unhealthy",
				Message: err.Error(),
			})
			return
		}
	}

	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: healthMessage,
	})
}
