package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	db *store.DB,
	svc *study.Service,
	engine *timer.Engine,
	apiKey string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))
	r.Use(Metrics)

	// Handlers
	healthH := NewHealthHandler(db)
	dashboardH := NewDashboardHandler(svc, engine)
	sessionH := NewSessionHandler(svc)
	deadlineH := NewDeadlineHandler(svc)
	settingsH := NewSettingsHandler(svc)
	timerH := NewTimerHandler(engine)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/login", dashboardH.Login)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Get("/dashboard", dashboardH.Dashboard)
		r.Get("/weekly", dashboardH.Weekly)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionH.List)
			r.Post("/", sessionH.AddMinutes)
			r.Post("/quick", sessionH.QuickAdd)
		})

		r.Route("/deadlines", func(r chi.Router) {
			r.Get("/", deadlineH.List)
			r.Post("/", deadlineH.Create)
			r.Delete("/{id}", deadlineH.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsH.Get)
			r.Put("/", settingsH.Update)
		})

		r.Route("/timer", func(r chi.Router) {
			r.Get("/", timerH.Get)
			r.Post("/start", timerH.Start)
			r.Post("/pause", timerH.Pause)
			r.Post("/reset", timerH.Reset)
			r.Post("/skip", timerH.Skip)
		})
	})

	return r
}
