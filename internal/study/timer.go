package study

import (
	"context"
	"time"

	"github.com/Primadeb/pri2025Study/internal/metrics"
	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

// TimerConfig derives the focus timer lengths: study follows the focus time
// setting, break stays as configured.
func TimerConfig(settings models.Settings, breakLength time.Duration) timer.Config {
	return timer.Config{
		Study: time.Duration(settings.FocusTimeMinutes) * time.Minute,
		Break: breakLength,
	}
}

// SeedSettings builds the first-run settings from a configured study length.
// Lengths are rounded down to whole minutes.
func SeedSettings(studyLength time.Duration) models.Settings {
	return models.Settings{
		QuickAddMinutes:  models.DefaultQuickAddMinutes,
		FocusTimeMinutes: int(studyLength / time.Minute),
	}
}

// TimerSnapshot converts engine state into its API shape.
func TimerSnapshot(s timer.Snapshot) models.TimerResponse {
	return models.TimerResponse{
		Phase:            string(s.Phase),
		RemainingSeconds: s.RemainingSeconds,
		Clock:            s.Clock(),
		Progress:         s.Progress(),
		Running:          s.Running,
	}
}

// WatchTimer consumes timer events until ctx is done or the channel closes.
// Completed phases are counted; with autoLog set, a completed study phase is
// also logged as a study session.
func (s *Service) WatchTimer(ctx context.Context, events <-chan timer.Event, autoLog bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleTimerEvent(ctx, ev, autoLog)
		}
	}
}

func (s *Service) handleTimerEvent(ctx context.Context, ev timer.Event, autoLog bool) {
	switch ev.Type {
	case timer.EventStateChange:
		metrics.SetTimerRunning(ev.State.Running)
	case timer.EventPhaseComplete:
		metrics.TrackPhaseCompleted(string(ev.Completed))
		s.logger.Info("timer phase complete", "phase", ev.Completed, "seconds", ev.CompletedSeconds)
		if !autoLog || ev.Completed != timer.PhaseStudy {
			return
		}
		minutes := ev.CompletedSeconds / 60
		if _, err := s.addMinutes(ctx, minutes, SourceTimer); err != nil {
			s.logger.Error("auto-log study phase", "error", err, "minutes", minutes)
		}
	}
}
