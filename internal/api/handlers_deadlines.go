package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/study"
)

type DeadlineHandler struct {
	svc *study.Service
}

func NewDeadlineHandler(svc *study.Service) *DeadlineHandler {
	return &DeadlineHandler{svc: svc}
}

// List handles GET /deadlines
func (h *DeadlineHandler) List(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.svc.Deadlines(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deadlines == nil {
		deadlines = []models.Deadline{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deadlines": deadlines,
	})
}

// Create handles POST /deadlines
func (h *DeadlineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AddDeadlineRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.svc.AddDeadline(r.Context(), req.Title, req.DueText)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, d)
}

// Delete handles DELETE /deadlines/{id}
func (h *DeadlineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid deadline id")
		return
	}

	if err := h.svc.DeleteDeadline(r.Context(), id); err != nil {
		if errors.Is(err, study.ErrNotFound) {
			writeError(w, http.StatusNotFound, "deadline not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
