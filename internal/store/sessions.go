package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Primadeb/pri2025Study/internal/metrics"
	"github.com/Primadeb/pri2025Study/internal/models"
)

// SessionStore handles StudySession persistence.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new session store.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Insert logs one study interval and returns the stored row.
func (s *SessionStore) Insert(ctx context.Context, dayIndex, minutes int) (*models.StudySession, error) {
	defer metrics.TrackDBOperation("insert", "study_sessions").ObserveDuration()

	now := time.Now().UnixMilli()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO study_sessions (day_index, minutes, timestamp)
		VALUES (?, ?, ?)
	`, dayIndex, minutes, now)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	return &models.StudySession{
		ID:        id,
		DayIndex:  dayIndex,
		Minutes:   minutes,
		Timestamp: now,
	}, nil
}

// TotalsByDay sums minutes grouped by day index.
func (s *SessionStore) TotalsByDay(ctx context.Context) ([]models.DayTotal, error) {
	defer metrics.TrackDBOperation("totals", "study_sessions").ObserveDuration()

	rows, err := s.db.QueryContext(ctx, `
		SELECT day_index, SUM(minutes) AS total_minutes
		FROM study_sessions
		GROUP BY day_index
		ORDER BY day_index
	`)
	if err != nil {
		return nil, fmt.Errorf("totals by day: %w", err)
	}
	defer rows.Close()

	var totals []models.DayTotal
	for rows.Next() {
		var t models.DayTotal
		if err := rows.Scan(&t.DayIndex, &t.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// List returns the most recent sessions, newest first.
func (s *SessionStore) List(ctx context.Context, limit int) ([]models.StudySession, error) {
	defer metrics.TrackDBOperation("list", "study_sessions").ObserveDuration()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day_index, minutes, timestamp
		FROM study_sessions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var sess models.StudySession
		if err := rows.Scan(&sess.ID, &sess.DayIndex, &sess.Minutes, &sess.Timestamp); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
