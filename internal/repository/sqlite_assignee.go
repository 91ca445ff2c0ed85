package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteAssigneeRepo implements AssigneeRepo using a SQLite database.
type SQLiteAssigneeRepo struct {
	db db.DBTX
}

func NewSQLiteAssigneeRepo(conn db.DBTX) *SQLiteAssigneeRepo {
	return &SQLiteAssigneeRepo{db: conn}
}

// Upsert inserts the assignee or renames an existing one with the same id.
func (r *SQLiteAssigneeRepo) Upsert(ctx context.Context, a *domain.Assignee) error {
	query := `INSERT INTO assignees (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Name); err != nil {
		return fmt.Errorf("upserting assignee: %w", err)
	}
	return nil
}

func (r *SQLiteAssigneeRepo) List(ctx context.Context) ([]*domain.Assignee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM assignees ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing assignees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignee
	for rows.Next() {
		var a domain.Assignee
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scanning assignee row: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignees: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssigneeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignees`); err != nil {
		return fmt.Errorf("deleting assignees: %w", err)
	}
	return nil
}
