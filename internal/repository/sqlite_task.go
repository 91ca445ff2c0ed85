package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskSelect = `SELECT t.id, t.project_id, t.sprint_id, t.key, t.name,
		t.start_date, t.end_date, t.due_date,
		a.id, a.name,
		t.status_name, t.status_category, t.order_index
	FROM tasks t
	LEFT JOIN assignees a ON a.id = t.assignee_id`

// Create inserts the task. The assignee, if any, must already exist.
func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	var assigneeID *string
	if t.Assignee != nil {
		assigneeID = &t.Assignee.ID
	}
	projectID := &t.ProjectID

	query := `INSERT INTO tasks (id, project_id, sprint_id, key, name, start_date, end_date, due_date,
		assignee_id, status_name, status_category, order_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		nullableStringToValue(projectID),
		nullableStringToValue(t.SprintID),
		t.Key,
		t.Name,
		nullableDateToString(t.StartDate),
		nullableDateToString(t.EndDate),
		nullableDateToString(t.DueDate),
		nullableStringToValue(assigneeID),
		t.Status.Name,
		t.Status.Category.String(),
		t.OrderIndex,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.scanTask(r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, id))
}

// List returns every task, sprint tasks and backlog tasks alike, in position order.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, taskSelect+` ORDER BY t.order_index, t.created_at, t.id`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

// DeleteAll removes every task, including backlog tasks with no project.
func (r *SQLiteTaskRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("deleting tasks: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var projectID, sprintID, startStr, endStr, dueStr, assigneeID, assigneeName sql.NullString
	var categoryStr string

	err := row.Scan(
		&t.ID, &projectID, &sprintID, &t.Key, &t.Name,
		&startStr, &endStr, &dueStr,
		&assigneeID, &assigneeName,
		&t.Status.Name, &categoryStr, &t.OrderIndex,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.ProjectID = projectID.String
	t.SprintID = nullableFromNullString(sprintID)
	t.StartDate = parseNullableDate(startStr)
	t.EndDate = parseNullableDate(endStr)
	t.DueDate = parseNullableDate(dueStr)
	t.Status.Category = domain.ParseStatusCategory(categoryStr)
	if assigneeID.Valid {
		t.Assignee = &domain.Assignee{ID: assigneeID.String, Name: assigneeName.String}
	}
	return &t, nil
}
