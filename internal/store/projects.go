package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const projectColumns = "id, name, path, created_at, fields"

// InsertProject stores a new project and returns the fully materialized row,
// including the database-assigned identifier. The insert and the re-fetch run
// in one transaction: if the re-fetch fails, the insert rolls back and the
// partial row is never observable.
func (s *Store) InsertProject(ctx context.Context, np NewProject) (*Project, error) {
	if err := np.validate(); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	createdAt := np.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	fields := np.Fields
	if fields == "" {
		fields = "[]"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("insert project: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO projects (name, path, created_at, fields) VALUES (?, ?, ?, ?)`,
		np.Name,
		np.Path,
		createdAt.UTC().Format(time.RFC3339Nano),
		fields,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert project: last insert id: %w", err)
	}

	project, err := getProject(ctx, tx, ProjectID(id))
	if err != nil {
		return nil, fmt.Errorf("insert project: refetch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("insert project: commit: %w", err)
	}
	return project, nil
}

// GetProject fetches a project by identifier.
func (s *Store) GetProject(ctx context.Context, id ProjectID) (*Project, error) {
	project, err := getProject(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return project, nil
}

// Projects returns all projects in insertion order.
func (s *Store) Projects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject overwrites all mutable columns of the row matching the
// project's identifier and returns the updated row. There is no version
// check; the last writer wins.
func (s *Store) UpdateProject(ctx context.Context, p *Project) (*Project, error) {
	if p == nil {
		return nil, errors.New("update project: project is nil")
	}
	check := NewProject{Name: p.Name, Fields: p.Fields}
	if err := check.validate(); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	fields := p.Fields
	if fields == "" {
		fields = "[]"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update project: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`UPDATE projects SET name = ?, path = ?, created_at = ?, fields = ? WHERE id = ?`,
		p.Name,
		p.Path,
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
		fields,
		p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	project, err := getProject(ctx, tx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update project %s: refetch: %w", p.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update project: commit: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project by identifier and reports how many rows
// were removed (0 or 1). Deleting a missing id is not an error.
func (s *Store) DeleteProject(ctx context.Context, id ProjectID) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete project %s: rows affected: %w", id, err)
	}
	return affected, nil
}

func getProject(ctx context.Context, q querier, id ProjectID) (*Project, error) {
	row := q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func scanProject(sc scanner) (*Project, error) {
	var (
		project    Project
		createdRaw string
	)
	if err := sc.Scan(&project.ID, &project.Name, &project.Path, &createdRaw, &project.Fields); err != nil {
		return nil, err
	}
	created, err := parseTimeString(createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse project created_at %q: %w", createdRaw, err)
	}
	project.CreatedAt = created
	return &project, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
