package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
)

// SQLiteVersionRepo reads and bumps the single data_version row.
type SQLiteVersionRepo struct {
	db db.DBTX
}

func NewSQLiteVersionRepo(conn db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{db: conn}
}

func (r *SQLiteVersionRepo) Get(ctx context.Context) (int64, error) {
	var v int64
	if err := r.db.QueryRowContext(ctx, `SELECT version FROM data_version WHERE id = 1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading data version: %w", err)
	}
	return v, nil
}

// Bump increments the version atomically and returns the new value.
func (r *SQLiteVersionRepo) Bump(ctx context.Context) (int64, error) {
	query := `UPDATE data_version SET version = version + 1, updated_at = ? WHERE id = 1 RETURNING version`
	var v int64
	if err := r.db.QueryRowContext(ctx, query, nowUTC()).Scan(&v); err != nil {
		return 0, fmt.Errorf("bumping data version: %w", err)
	}
	return v, nil
}
