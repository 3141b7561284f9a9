package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Primadeb/pri2025Study/internal/api"
	"github.com/Primadeb/pri2025Study/internal/config"
	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	if cfg.FilePath != "" {
		logger.Info("config file loaded", "path", cfg.FilePath)
	}

	// SQLite
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Study service
	svc := study.NewService(
		store.NewSessionStore(db),
		store.NewDeadlineStore(db),
		store.NewSettingsStore(db),
		logger,
	)
	svc.SetDefaults(study.SeedSettings(cfg.StudyDuration()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings, err := svc.Settings(ctx)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	// Focus timer
	engine := timer.New(study.TimerConfig(settings, cfg.BreakDuration()))
	svc.OnSettingsChanged(func(s models.Settings) {
		engine.Reconfigure(study.TimerConfig(s, cfg.BreakDuration()))
	})
	events := engine.Subscribe(64)
	go svc.WatchTimer(ctx, events, cfg.AutoLogStudy)
	go func() {
		if err := timer.NewRunner(engine, time.Second).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("timer runner stopped", "error", err)
		}
	}()

	// Router
	router := api.NewRouter(db, svc, engine, cfg.APIKey, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("study server starting",
			"addr", addr,
			"focus_minutes", settings.FocusTimeMinutes,
			"break_minutes", cfg.BreakMinutes,
			"auto_log", cfg.AutoLogStudy,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	cancel()
	engine.Close()
	logger.Info("server stopped")
}
