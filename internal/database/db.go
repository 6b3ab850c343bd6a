package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier 是 pool 與 pgx.Tx 共同的查詢方法，store 層只依賴它
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB 由 *pgxpool.Pool 實作
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(context.Context) error
	Close()
}

// WithTx 在單一交易內執行 fn；fn 回傳錯誤即整筆 rollback
func WithTx(ctx context.Context, db DB, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, fn)
}

type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	BeginFn    func(ctx context.Context) (pgx.Tx, error)
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (f *FakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.BeginFn != nil {
		return f.BeginFn(ctx)
	}
	panic("unexpected Begin")
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeTx 記錄 Commit/Rollback 狀態；未設定的查詢方法會 panic。
// 其餘 pgx.Tx 方法（CopyFrom、SendBatch…）未實作，呼叫時會 nil panic。
type FakeTx struct {
	pgx.Tx

	ExecFn      func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn     func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn  func(ctx context.Context, sql string, args ...any) pgx.Row
	CommitErr   error
	RollbackErr error

	Committed  bool
	RolledBack bool
	closed     bool
}

func (t *FakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.ExecFn != nil {
		return t.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (t *FakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if t.QueryFn != nil {
		return t.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.QueryRowFn != nil {
		return t.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (t *FakeTx) Commit(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.RolledBack = true
	return t.RollbackErr
}
