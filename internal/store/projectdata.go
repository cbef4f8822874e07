package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetValue fetches one settings value by key.
func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM project_data WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get value %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get value %q: %w", key, err)
	}
	return value, nil
}

// SetValue stores a settings value, replacing any previous value for the key.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("set value: key required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO project_data (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("set value %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes a settings row by key and reports how many rows were
// removed (0 or 1).
func (s *Store) DeleteValue(ctx context.Context, key string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM project_data WHERE key = ?`, key)
	if err != nil {
		return 0, fmt.Errorf("delete value %q: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete value %q: rows affected: %w", key, err)
	}
	return affected, nil
}

// Values returns all settings rows ordered by key.
func (s *Store) Values(ctx context.Context) ([]ProjectData, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM project_data ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list values: %w", err)
	}
	defer rows.Close()

	var values []ProjectData
	for rows.Next() {
		var pd ProjectData
		if err := rows.Scan(&pd.Key, &pd.Value); err != nil {
			return nil, err
		}
		values = append(values, pd)
	}
	return values, rows.Err()
}

// SetActiveProject records the given project as active. The project must
// exist.
func (s *Store) SetActiveProject(ctx context.Context, id ProjectID) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return fmt.Errorf("set active project: %w", err)
	}
	return s.SetValue(ctx, ActiveProjectKey, id.String())
}

// ActiveProject returns the currently active project. ErrNotFound is
// surfaced when no active project is recorded or the recorded id dangles.
func (s *Store) ActiveProject(ctx context.Context) (*Project, error) {
	value, err := s.GetValue(ctx, ActiveProjectKey)
	if err != nil {
		return nil, fmt.Errorf("active project: %w", err)
	}
	id, err := ParseProjectID(value)
	if err != nil {
		return nil, fmt.Errorf("active project: %w", err)
	}
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("active project: %w", err)
	}
	return project, nil
}
