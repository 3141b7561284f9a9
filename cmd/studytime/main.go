package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Primadeb/pri2025Study/internal/config"
	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
	"github.com/Primadeb/pri2025Study/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

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
		return err
	}

	engine := timer.New(study.TimerConfig(settings, cfg.BreakDuration()))
	defer engine.Close()
	svc.OnSettingsChanged(func(s models.Settings) {
		engine.Reconfigure(study.TimerConfig(s, cfg.BreakDuration()))
	})

	// One subscription feeds the auto-logger, another the screen.
	go svc.WatchTimer(ctx, engine.Subscribe(64), cfg.AutoLogStudy)
	uiEvents := engine.Subscribe(64)
	go func() {
		_ = timer.NewRunner(engine, time.Second).Run(ctx)
	}()

	p := tea.NewProgram(
		tui.NewRootModel(svc, engine, uiEvents),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
