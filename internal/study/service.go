// Package study implements the dashboard actions: logging minutes, the
// weekly summary, deadlines, settings and the mock sign-in.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Primadeb/pri2025Study/internal/metrics"
	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/weekly"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrInvalidSettings    = errors.New("settings minutes must be between 1 and 600")
)

const maxSettingMinutes = 600

// Sources of logged minutes, used as metric labels.
const (
	SourceManual = "manual"
	SourceQuick  = "quick"
	SourceTimer  = "timer"
)

// Service coordinates the stores behind the dashboard.
type Service struct {
	sessions  *store.SessionStore
	deadlines *store.DeadlineStore
	settings  *store.SettingsStore
	logger    *slog.Logger

	mu        sync.Mutex
	now       func() time.Time
	defaults  models.Settings
	listeners []func(models.Settings)
}

// NewService creates the study service.
func NewService(
	sessions *store.SessionStore,
	deadlines *store.DeadlineStore,
	settings *store.SettingsStore,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions:  sessions,
		deadlines: deadlines,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
		defaults:  models.DefaultSettings(),
	}
}

// SetDefaults replaces the settings persisted on first use. Invalid values
// fall back to the built-in defaults.
func (s *Service) SetDefaults(defaults models.Settings) {
	builtin := models.DefaultSettings()
	if defaults.QuickAddMinutes < 1 || defaults.QuickAddMinutes > maxSettingMinutes {
		defaults.QuickAddMinutes = builtin.QuickAddMinutes
	}
	if defaults.FocusTimeMinutes < 1 || defaults.FocusTimeMinutes > maxSettingMinutes {
		defaults.FocusTimeMinutes = builtin.FocusTimeMinutes
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = defaults
}

// SetClock replaces the wall clock used to pick the day of new sessions.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// OnSettingsChanged registers a callback run after settings are saved.
func (s *Service) OnSettingsChanged(fn func(models.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Today returns the current day index, Monday = 0.
func (s *Service) Today() int {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()
	return weekly.DayIndex(now())
}

// AddMinutes logs minutes against today. Non-positive input is a no-op and
// returns a nil session.
func (s *Service) AddMinutes(ctx context.Context, minutes int) (*models.StudySession, error) {
	return s.addMinutes(ctx, minutes, SourceManual)
}

// AddMinutesText parses free-form input the way the dashboard field does:
// non-digits are dropped and anything unparseable counts as zero.
func (s *Service) AddMinutesText(ctx context.Context, raw string) (*models.StudySession, error) {
	return s.addMinutes(ctx, ParseMinutes(raw), SourceManual)
}

// QuickAdd logs the configured quick-add increment.
func (s *Service) QuickAdd(ctx context.Context) (*models.StudySession, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return s.addMinutes(ctx, settings.QuickAddMinutes, SourceQuick)
}

func (s *Service) addMinutes(ctx context.Context, minutes int, source string) (*models.StudySession, error) {
	if minutes <= 0 {
		return nil, nil
	}
	day := s.Today()
	sess, err := s.sessions.Insert(ctx, day, minutes)
	if err != nil {
		return nil, fmt.Errorf("add minutes: %w", err)
	}
	metrics.TrackStudyMinutes(source, minutes)
	s.logger.Debug("study minutes logged", "day", weekly.Label(day), "minutes", minutes, "source", source)
	return sess, nil
}

// ParseMinutes keeps only the digits of raw and parses them. Empty or
// overflowing input yields 0.
func ParseMinutes(raw string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Sessions returns the most recent logged sessions.
func (s *Service) Sessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	return s.sessions.List(ctx, limit)
}

// Weekly computes the per-day summary from the grouped-sum query.
func (s *Service) Weekly(ctx context.Context) (weekly.Summary, error) {
	rows, err := s.sessions.TotalsByDay(ctx)
	if err != nil {
		return weekly.Summary{}, fmt.Errorf("weekly summary: %w", err)
	}
	return weekly.Summarize(weekly.FromDayTotals(rows)), nil
}

// NormalizeDeadline applies the placeholder rules for blank input.
func NormalizeDeadline(title, dueText string) (string, string) {
	title = strings.TrimSpace(title)
	dueText = strings.TrimSpace(dueText)
	if title == "" {
		title = models.UntitledDeadline
	}
	if dueText == "" {
		dueText = models.UnscheduledDue
	}
	return title, dueText
}

// AddDeadline stores a deadline, substituting placeholders for blanks.
func (s *Service) AddDeadline(ctx context.Context, title, dueText string) (*models.Deadline, error) {
	title, dueText = NormalizeDeadline(title, dueText)
	d, err := s.deadlines.Insert(ctx, title, dueText)
	if err != nil {
		return nil, fmt.Errorf("add deadline: %w", err)
	}
	metrics.TrackDeadlineOperation("create")
	return d, nil
}

// Deadlines lists deadlines, most recent first.
func (s *Service) Deadlines(ctx context.Context) ([]models.Deadline, error) {
	return s.deadlines.List(ctx)
}

// DeleteDeadline removes a deadline by id.
func (s *Service) DeleteDeadline(ctx context.Context, id int64) error {
	removed, err := s.deadlines.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	metrics.TrackDeadlineOperation("delete")
	return nil
}

// Settings returns the stored settings. On first use the defaults are
// persisted and returned.
func (s *Service) Settings(ctx context.Context) (models.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	s.mu.Lock()
	defaults := s.defaults
	s.mu.Unlock()
	if err := s.settings.Save(ctx, defaults); err != nil {
		return models.Settings{}, err
	}
	s.logger.Info("settings initialized with defaults",
		"quick_add_minutes", defaults.QuickAddMinutes,
		"focus_time_minutes", defaults.FocusTimeMinutes,
	)
	return defaults, nil
}

// UpdateSettings validates and saves new settings, then notifies listeners.
func (s *Service) UpdateSettings(ctx context.Context, quickAdd, focusTime int) (models.Settings, error) {
	if quickAdd < 1 || quickAdd > maxSettingMinutes || focusTime < 1 || focusTime > maxSettingMinutes {
		return models.Settings{}, ErrInvalidSettings
	}
	settings := models.Settings{QuickAddMinutes: quickAdd, FocusTimeMinutes: focusTime}
	if err := s.settings.Save(ctx, settings); err != nil {
		return models.Settings{}, err
	}

	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(settings)
	}
	return settings, nil
}

// Login is the mock sign-in: any non-blank email and password pass.
func Login(email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrInvalidCredentials
	}
	return nil
}
