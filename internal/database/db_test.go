package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRows struct{}

func (fakeRows) Close()                                       {}
func (fakeRows) Err() error                                   { return nil }
func (fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fakeRows) Next() bool                                   { return false }
func (fakeRows) Scan(dest ...any) error                       { return nil }
func (fakeRows) Values() ([]any, error)                       { return nil, nil }
func (fakeRows) RawValues() [][]byte                          { return nil }
func (fakeRows) Conn() *pgx.Conn                              { return nil }

func TestFakeDB(t *testing.T) {
	db := &FakeDB{}
	require.Panics(t, func() { db.Exec(context.Background(), "", nil) })
	require.Panics(t, func() { db.Query(context.Background(), "") })
	require.Panics(t, func() { db.QueryRow(context.Background(), "") })
	require.Panics(t, func() { db.Begin(context.Background()) })
	require.Panics(t, func() { db.Ping(context.Background()) })
	db.Close()

	execCalled := false
	queryCalled := false
	rowCalled := false
	pingCalled := false
	closeCalled := false

	db.ExecFn = func(ctx context.Context, s string, args ...any) (pgconn.CommandTag, error) {
		execCalled = true
		return pgconn.CommandTag{}, errors.New("e")
	}
	db.QueryFn = func(ctx context.Context, s string, args ...any) (pgx.Rows, error) {
		queryCalled = true
		return fakeRows{}, nil
	}
	db.QueryRowFn = func(ctx context.Context, s string, args ...any) pgx.Row {
		rowCalled = true
		return pgx.Row(fakeRows{})
	}
	db.PingFn = func(ctx context.Context) error { pingCalled = true; return nil }
	db.CloseFn = func() { closeCalled = true }

	_, err := db.Exec(context.Background(), "sql")
	require.Error(t, err)
	_, err = db.Query(context.Background(), "sql")
	require.NoError(t, err)
	_ = db.QueryRow(context.Background(), "sql")
	require.NoError(t, db.Ping(context.Background()))
	db.Close()
	require.True(t, execCalled)
	require.True(t, queryCalled)
	require.True(t, rowCalled)
	require.True(t, pingCalled)
	require.True(t, closeCalled)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("begin error", func(t *testing.T) {
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("begin") }}
		called := false
		err := WithTx(ctx, db, func(pgx.Tx) error { called = true; return nil })
		require.EqualError(t, err, "begin")
		require.False(t, called)
	})

	t.Run("commit on success", func(t *testing.T) {
		tx := &FakeTx{}
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		require.NoError(t, WithTx(ctx, db, func(got pgx.Tx) error {
			require.Same(t, tx, got)
			return nil
		}))
		require.True(t, tx.Committed)
		require.False(t, tx.RolledBack)
	})

	t.Run("rollback on error", func(t *testing.T) {
		tx := &FakeTx{}
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		sentinel := errors.New("second write failed")
		err := WithTx(ctx, db, func(pgx.Tx) error { return sentinel })
		require.ErrorIs(t, err, sentinel)
		require.False(t, tx.Committed)
		require.True(t, tx.RolledBack)
	})

	t.Run("commit error", func(t *testing.T) {
		tx := &FakeTx{CommitErr: errors.New("commit")}
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		err := WithTx(ctx, db, func(pgx.Tx) error { return nil })
		require.Error(t, err)
		require.False(t, tx.Committed)
	})
}

func TestFakeTx(t *testing.T) {
	tx := &FakeTx{}
	require.Panics(t, func() { tx.Exec(context.Background(), "") })
	require.Panics(t, func() { tx.Query(context.Background(), "") })
	require.Panics(t, func() { tx.QueryRow(context.Background(), "") })

	require.NoError(t, tx.Commit(context.Background()))
	require.ErrorIs(t, tx.Rollback(context.Background()), pgx.ErrTxClosed)
	require.ErrorIs(t, tx.Commit(context.Background()), pgx.ErrTxClosed)
}
