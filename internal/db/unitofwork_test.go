package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/db"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertProject(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, key, order_index, created_at) VALUES (?, ?, ?, 0, '')`,
		id, "Project "+id, "K"+id)
	return err
}

func projectExists(t *testing.T, uow db.UnitOfWork, id string) bool {
	t.Helper()
	var n int
	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&n)
	})
	require.NoError(t, err)
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertProject(ctx, tx, "p1")
	})
	require.NoError(t, err)
	assert.True(t, projectExists(t, uow, "p1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, insertProject(ctx, tx, "p2"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, projectExists(t, uow, "p2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProject(ctx, tx, "p3")
			panic("boom")
		})
	})
	assert.False(t, projectExists(t, uow, "p3"))
}

func TestWithinReadTx_DiscardsWrites(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, insertProject(ctx, tx, "p4"))
		var n int
		require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n))
		assert.Equal(t, 1, n, "the snapshot sees its own write")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, projectExists(t, uow, "p4"), "read transactions never commit")
}

func TestWithinReadTx_PropagatesError(t *testing.T) {
	uow := openTestUoW(t)
	boom := errors.New("read failed")

	err := uow.WithinReadTx(context.Background(), func(context.Context, db.DBTX) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWithinTx_CancelledContext(t *testing.T) {
	uow := openTestUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beginning transaction")
}
