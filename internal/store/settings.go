package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Primadeb/pri2025Study/internal/metrics"
	"github.com/Primadeb/pri2025Study/internal/models"
)

// settingsRowID is the id of the only row in study_settings.
const settingsRowID = 0

// SettingsStore reads and writes the singleton settings row.
type SettingsStore struct {
	db *DB
}

func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored settings, or nil if none were saved yet.
func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	defer metrics.TrackDBOperation("get", "study_settings").ObserveDuration()

	var settings models.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT quick_add_minutes, focus_time_minutes
		FROM study_settings WHERE id = ? LIMIT 1
	`, settingsRowID).Scan(&settings.QuickAddMinutes, &settings.FocusTimeMinutes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

// Save upserts the settings row.
func (s *SettingsStore) Save(ctx context.Context, settings models.Settings) error {
	defer metrics.TrackDBOperation("save", "study_settings").ObserveDuration()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO study_settings (id, quick_add_minutes, focus_time_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			quick_add_minutes = excluded.quick_add_minutes,
			focus_time_minutes = excluded.focus_time_minutes
	`, settingsRowID, settings.QuickAddMinutes, settings.FocusTimeMinutes)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
