package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Primadeb/pri2025Study/internal/metrics"
	"github.com/Primadeb/pri2025Study/internal/models"
)

// DeadlineStore handles Deadline persistence.
type DeadlineStore struct {
	db *DB
}

// NewDeadlineStore creates a new deadline store.
func NewDeadlineStore(db *DB) *DeadlineStore {
	return &DeadlineStore{db: db}
}

// Insert stores a deadline as given. Callers normalize blank fields.
func (s *DeadlineStore) Insert(ctx context.Context, title, dueText string) (*models.Deadline, error) {
	defer metrics.TrackDBOperation("insert", "deadlines").ObserveDuration()

	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO deadlines (title, due_text, created_at)
		VALUES (?, ?, ?)
	`, title, dueText, now)
	if err != nil {
		return nil, fmt.Errorf("insert deadline: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("deadline id: %w", err)
	}
	return &models.Deadline{ID: id, Title: title, DueText: dueText, CreatedAt: now}, nil
}

// List returns all deadlines, most recently added first.
func (s *DeadlineStore) List(ctx context.Context) ([]models.Deadline, error) {
	defer metrics.TrackDBOperation("list", "deadlines").ObserveDuration()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, due_text, created_at
		FROM deadlines ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	defer rows.Close()

	var deadlines []models.Deadline
	for rows.Next() {
		var d models.Deadline
		if err := rows.Scan(&d.ID, &d.Title, &d.DueText, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		deadlines = append(deadlines, d)
	}
	return deadlines, rows.Err()
}

// Delete removes a deadline. It reports whether a row was removed.
func (s *DeadlineStore) Delete(ctx context.Context, id int64) (bool, error) {
	defer metrics.TrackDBOperation("delete", "deadlines").ObserveDuration()

	res, err := s.db.ExecContext(ctx, `DELETE FROM deadlines WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete deadline: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete deadline: %w", err)
	}
	return n > 0, nil
}
