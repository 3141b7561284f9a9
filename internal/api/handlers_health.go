package api

import (
	"net/http"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/store"
)

type HealthHandler struct {
	db *store.DB
}

func NewHealthHandler(db *store.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status: "ok",
	}
	ctx := r.Context()

	if err := h.db.PingContext(ctx); err != nil {
		resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.DB = models.ServiceCheck{Status: "ok"}
	}

	if resp.Status == "ok" {
		sessions, err := h.db.SessionCount(ctx)
		if err != nil {
			resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
			resp.Status = "degraded"
		}
		deadlines, err := h.db.DeadlineCount(ctx)
		if err != nil {
			resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
			resp.Status = "degraded"
		}
		resp.SessionCount = sessions
		resp.DeadlineCount = deadlines
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
