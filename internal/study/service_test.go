package study

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

// 2024-01-04 was a Thursday.
var thursday = time.Date(2024, time.January, 4, 10, 0, 0, 0, time.UTC)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store.NewSessionStore(db), store.NewDeadlineStore(db), store.NewSettingsStore(db), logger)
	svc.SetClock(func() time.Time { return thursday })
	return svc
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 0},
		{"45", 45},
		{" 4 5 min", 45},
		{"-20", 20},
		{"99999999999999999999999", 0},
	}
	for _, tt := range tests {
		if got := ParseMinutes(tt.input); got != tt.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	t.Run("logs against today", func(t *testing.T) {
		sess, err := svc.AddMinutes(ctx, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess == nil || sess.DayIndex != 3 || sess.Minutes != 25 {
			t.Fatalf("unexpected session %+v", sess)
		}
	})

	t.Run("non-numeric text is a no-op", func(t *testing.T) {
		sess, err := svc.AddMinutesText(ctx, "soon")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess != nil {
			t.Fatalf("expected no session, got %+v", sess)
		}
	})

	t.Run("zero is a no-op", func(t *testing.T) {
		sess, err := svc.AddMinutes(ctx, 0)
		if err != nil || sess != nil {
			t.Fatalf("expected no-op, got %+v, %v", sess, err)
		}
	})

	list, err := svc.Sessions(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 stored session, got %d", len(list))
	}
}

func TestWeeklyEndToEnd(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	monday := thursday.AddDate(0, 0, -3)
	svc.SetClock(func() time.Time { return monday })
	for _, m := range []int{45, 15} {
		if _, err := svc.AddMinutes(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	svc.SetClock(func() time.Time { return thursday })
	if _, err := svc.AddMinutes(ctx, 20); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Weekly(ctx)
	if err != nil {
		t.Fatalf("weekly failed: %v", err)
	}
	want := [7]int{60, 0, 0, 20, 0, 0, 0}
	if [7]int(summary.Totals) != want {
		t.Errorf("Totals = %v, want %v", summary.Totals, want)
	}
	if summary.MaxDay != 60 || summary.WeeklyTotal != 80 {
		t.Errorf("MaxDay = %d, WeeklyTotal = %d; want 60, 80", summary.MaxDay, summary.WeeklyTotal)
	}
}

func TestSettingsFirstLoadPersistsDefaults(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	got, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Fatalf("Settings() = %+v, want defaults", got)
	}
	stored, err := svc.settings.Get(ctx)
	if err != nil || stored == nil {
		t.Fatalf("expected defaults to be persisted, got %+v, %v", stored, err)
	}
}

func TestSetDefaultsSeedsFirstLoad(t *testing.T) {
	svc := setupService(t)
	svc.SetDefaults(models.Settings{QuickAddMinutes: 0, FocusTimeMinutes: 45})

	got, err := svc.Settings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.Settings{QuickAddMinutes: models.DefaultQuickAddMinutes, FocusTimeMinutes: 45}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestSeedSettingsFromStudyLength(t *testing.T) {
	tests := []struct {
		name   string
		length time.Duration
		want   models.Settings
	}{
		{"whole minutes", 45 * time.Minute, models.Settings{QuickAddMinutes: models.DefaultQuickAddMinutes, FocusTimeMinutes: 45}},
		{"rounds down", 25*time.Minute + 40*time.Second, models.Settings{QuickAddMinutes: models.DefaultQuickAddMinutes, FocusTimeMinutes: 25}},
		{"under a minute falls back", 30 * time.Second, models.DefaultSettings()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupService(t)
			svc.SetDefaults(SeedSettings(tt.length))

			got, err := svc.Settings(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Settings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUpdateSettingsAndQuickAdd(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var notified models.Settings
	svc.OnSettingsChanged(func(s models.Settings) { notified = s })

	if _, err := svc.UpdateSettings(ctx, 0, 25); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if _, err := svc.UpdateSettings(ctx, 15, 601); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}

	updated, err := svc.UpdateSettings(ctx, 15, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notified != updated {
		t.Errorf("listener got %+v, want %+v", notified, updated)
	}

	sess, err := svc.QuickAdd(ctx)
	if err != nil {
		t.Fatalf("quick add failed: %v", err)
	}
	if sess == nil || sess.Minutes != 15 {
		t.Fatalf("expected a 15 minute session, got %+v", sess)
	}
}

func TestSettingsListenersSeeEverySave(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var first, second []models.Settings
	svc.OnSettingsChanged(func(s models.Settings) {
		first = append(first, s)
		// Registering from inside a callback must not block the save.
		if len(first) == 1 {
			svc.OnSettingsChanged(func(s models.Settings) { second = append(second, s) })
		}
	})

	for _, focus := range []int{40, 55} {
		if _, err := svc.UpdateSettings(ctx, 20, focus); err != nil {
			t.Fatalf("update %d failed: %v", focus, err)
		}
	}

	if len(first) != 2 || first[1].FocusTimeMinutes != 55 {
		t.Errorf("first listener got %+v", first)
	}
	// The late listener only sees saves after it was added.
	if len(second) != 1 || second[0].FocusTimeMinutes != 55 {
		t.Errorf("second listener got %+v", second)
	}
}

func TestDeadlines(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	blank, err := svc.AddDeadline(ctx, "", "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blank.Title != "Untitled" || blank.DueText != "TBD" {
		t.Fatalf("expected placeholders, got %+v", blank)
	}

	named, err := svc.AddDeadline(ctx, "Thesis draft", "2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := svc.Deadlines(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != named.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := svc.DeleteDeadline(ctx, blank.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteDeadline(ctx, blank.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		email, password string
		wantErr         bool
	}{
		{"student@uni.edu", "secret", false},
		{"", "secret", true},
		{"student@uni.edu", "  ", true},
	}
	for _, tt := range tests {
		err := Login(tt.email, tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("Login(%q, %q) error = %v, wantErr %v", tt.email, tt.password, err, tt.wantErr)
		}
	}
}

func TestWatchTimerAutoLog(t *testing.T) {
	tests := []struct {
		name    string
		autoLog bool
		want    int
	}{
		{"disabled by default", false, 0},
		{"logs completed study phase", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupService(t)
			ctx := context.Background()

			engine := timer.New(timer.Config{Study: 2 * time.Minute, Break: time.Minute})
			events := engine.Subscribe(400)
			engine.Start()
			for i := 0; i < 120+60; i++ {
				engine.Tick(time.Now())
			}
			engine.Close()

			svc.WatchTimer(ctx, events, tt.autoLog)

			list, err := svc.Sessions(ctx, 10)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(list) != tt.want {
				t.Fatalf("expected %d sessions, got %d", tt.want, len(list))
			}
			if tt.want == 1 && list[0].Minutes != 2 {
				t.Errorf("expected 2 logged minutes, got %d", list[0].Minutes)
			}
		})
	}
}

func TestTimerConfigFollowsFocusTime(t *testing.T) {
	cfg := TimerConfig(models.Settings{QuickAddMinutes: 30, FocusTimeMinutes: 45}, 10*time.Minute)
	if cfg.Study != 45*time.Minute || cfg.Break != 10*time.Minute {
		t.Errorf("TimerConfig() = %+v", cfg)
	}

	resp := TimerSnapshot(timer.New(cfg).Snapshot())
	if resp.Phase != "study" || resp.Clock != "45:00" || resp.Running {
		t.Errorf("TimerSnapshot() = %+v", resp)
	}
}
