package api

import (
	"net/http"
	"strconv"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/study"
)

// SessionHandler handles study minute logging.
type SessionHandler struct {
	svc *study.Service
}

func NewSessionHandler(svc *study.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// AddMinutes handles POST /sessions
func (h *SessionHandler) AddMinutes(w http.ResponseWriter, r *http.Request) {
	var req models.AddMinutesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		sess *models.StudySession
		err  error
	)
	if req.Text != "" {
		sess, err = h.svc.AddMinutesText(r.Context(), req.Text)
	} else {
		sess, err = h.svc.AddMinutes(r.Context(), req.Minutes)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respond(w, r, sess)
}

// QuickAdd handles POST /sessions/quick
func (h *SessionHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.QuickAdd(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respond(w, r, sess)
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sessions, err := h.svc.Sessions(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
	})
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, sess *models.StudySession) {
	summary, err := h.svc.Weekly(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := models.AddMinutesResponse{
		Session:     sess,
		Skipped:     sess == nil,
		WeeklyTotal: summary.WeeklyTotal,
	}
	status := http.StatusCreated
	if sess == nil {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}
