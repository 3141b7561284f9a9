package api

import (
	"net/http"

	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

// TimerHandler forwards focus timer intents to the engine.
type TimerHandler struct {
	engine *timer.Engine
}

func NewTimerHandler(engine *timer.Engine) *TimerHandler {
	return &TimerHandler{engine: engine}
}

// Get handles GET /timer
func (h *TimerHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.snapshot(w)
}

// Start handles POST /timer/start
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.engine.Start()
	h.snapshot(w)
}

// Pause handles POST /timer/pause
func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.engine.Pause()
	h.snapshot(w)
}

// Reset handles POST /timer/reset
func (h *TimerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	h.snapshot(w)
}

// Skip handles POST /timer/skip
func (h *TimerHandler) Skip(w http.ResponseWriter, r *http.Request) {
	h.engine.Skip()
	h.snapshot(w)
}

func (h *TimerHandler) snapshot(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, study.TimerSnapshot(h.engine.Snapshot()))
}
