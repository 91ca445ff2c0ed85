package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

func NewSQLiteSprintRepo(conn db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: conn}
}

const sprintColumns = `id, project_id, name, start_date, end_date, status, order_index`

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	status := s.Status
	if status == "" {
		status = domain.SprintNotStarted
	}
	query := `INSERT INTO sprints (id, project_id, name, start_date, end_date, status, order_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Name,
		nullableDateToString(s.StartDate),
		nullableDateToString(s.EndDate),
		string(status),
		s.OrderIndex,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	return r.scanSprint(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSprintRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE project_id = ? ORDER BY order_index, created_at, id`
	return r.list(ctx, query, projectID)
}

// List returns every sprint ordered by project and position.
func (r *SQLiteSprintRepo) List(ctx context.Context) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints ORDER BY project_id, order_index, created_at, id`
	return r.list(ctx, query)
}

func (r *SQLiteSprintRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Sprint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := r.scanSprint(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}

func (r *SQLiteSprintRepo) scanSprint(row rowScanner) (*domain.Sprint, error) {
	var s domain.Sprint
	var startStr, endStr sql.NullString
	var statusStr string

	err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &startStr, &endStr, &statusStr, &s.OrderIndex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sprint %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}
	s.Status = domain.SprintStatus(statusStr)
	s.StartDate = parseNullableDate(startStr)
	s.EndDate = parseNullableDate(endStr)
	return &s, nil
}
