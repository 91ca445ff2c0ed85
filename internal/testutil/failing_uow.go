package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/gantt/internal/db"
)

// FailOnNthExecUoW wraps the production unit of work and returns Err from the
// FailOn-th ExecContext call of each write transaction (counting from 1).
// Imports issue one exec per row, so this pins a failure to a precise row and
// lets tests assert that nothing of the replace survived. Read transactions
// and query calls are never failed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	execs atomic.Int32
}

// Execs returns how many ExecContext calls the last write transaction made.
func (u *FailOnNthExecUoW) Execs() int32 { return u.execs.Load() }

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	u.execs.Store(0)
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, uow: u})
	})
}

func (u *FailOnNthExecUoW) WithinReadTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinReadTx(ctx, fn)
}

type failOnNthExec struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.execs.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
