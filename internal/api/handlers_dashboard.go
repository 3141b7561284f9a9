package api

import (
	"net/http"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
	"github.com/Primadeb/pri2025Study/internal/weekly"
)

type DashboardHandler struct {
	svc    *study.Service
	engine *timer.Engine
}

func NewDashboardHandler(svc *study.Service, engine *timer.Engine) *DashboardHandler {
	return &DashboardHandler{svc: svc, engine: engine}
}

// Login handles POST /login
func (h *DashboardHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := study.Login(req.Email, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Email: req.Email, SignedIn: true})
}

// Dashboard handles GET /dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.svc.Weekly(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	settings, err := h.svc.Settings(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	deadlines, err := h.svc.Deadlines(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deadlines == nil {
		deadlines = []models.Deadline{}
	}

	today := h.svc.Today()
	writeJSON(w, http.StatusOK, models.DashboardResponse{
		WeeklyTotal: summary.WeeklyTotal,
		Today:       summary.Totals[today],
		TodayLabel:  weekly.Label(today),
		Settings:    settings,
		Timer:       study.TimerSnapshot(h.engine.Snapshot()),
		Deadlines:   deadlines,
	})
}

// Weekly handles GET /weekly
func (h *DashboardHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Weekly(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary.Response())
}
