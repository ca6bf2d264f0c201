package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ProgressEntry is one stored progress value.
type ProgressEntry struct {
	Key       string
	Value     int
	UpdatedAt time.Time
}

// LoadProgress returns the value stored under key, or 0 if there is none.
func (s *Store) LoadProgress(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM progress WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load progress %s: %w", key, err)
	}
	return value, nil
}

// SaveProgress stores value under key. The stored value never decreases:
// saving a lower value than the current one is a no-op.
func (s *Store) SaveProgress(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		   value = MAX(value, excluded.value),
		   updated_at = CASE WHEN excluded.value > value THEN excluded.updated_at ELSE updated_at END`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress %s: %w", key, err)
	}
	return nil
}

// ResetProgress deletes the value stored under key.
func (s *Store) ResetProgress(key string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress %s: %w", key, err)
	}
	return nil
}

// AllProgress returns every stored progress value ordered by key.
func (s *Store) AllProgress() ([]ProgressEntry, error) {
	rows, err := s.db.Query("SELECT key, value, updated_at FROM progress ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		var updatedAt any
		if err := rows.Scan(&e.Key, &e.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
