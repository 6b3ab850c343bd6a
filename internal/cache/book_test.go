package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-api/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBookCache(t *testing.T) {
	ctx := context.Background()
	year := 1999
	book := &model.Book{ID: 4, Title: "Refactoring", Author: "Fowler", PublicationYear: &year, AvailableCopies: 3}

	t.Run("miss", func(t *testing.T) {
		fc := &FakeCache{GetFn: func(_ context.Context, key string) *redis.StringCmd {
			require.Equal(t, "book:4", key)
			return redis.NewStringResult("", redis.Nil)
		}}
		got, ok, err := NewBookCache(fc, time.Minute).Get(ctx, 4)
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("fill then hit", func(t *testing.T) {
		var stored string
		fc := &FakeCache{
			EvalFn: func(_ context.Context, script string, keys []string, args ...any) *redis.Cmd {
				require.Equal(t, fillScript, script)
				require.Equal(t, []string{"book:4", "book:4:ver"}, keys)
				require.Equal(t, "3", args[0])
				require.Equal(t, int64(5*time.Minute/time.Millisecond), args[2])
				stored = string(args[1].([]byte))
				return redis.NewCmdResult(int64(1), nil)
			},
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult(stored, nil)
			},
		}
		bc := NewBookCache(fc, 5*time.Minute)
		ok, err := bc.Fill(ctx, book, 3)
		require.NoError(t, err)
		require.True(t, ok)

		got, ok, err := bc.Get(ctx, 4)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "Refactoring", got.Title)
		require.Equal(t, 1999, *got.PublicationYear)
		require.Equal(t, 3, got.AvailableCopies)
	})

	t.Run("fill rejected by newer version", func(t *testing.T) {
		fc := &FakeCache{EvalFn: func(context.Context, string, []string, ...any) *redis.Cmd {
			return redis.NewCmdResult(int64(0), nil)
		}}
		ok, err := NewBookCache(fc, time.Minute).Fill(ctx, book, 1)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("version", func(t *testing.T) {
		fc := &FakeCache{GetFn: func(_ context.Context, key string) *redis.StringCmd {
			require.Equal(t, "book:4:ver", key)
			return redis.NewStringResult("", redis.Nil)
		}}
		bc := NewBookCache(fc, time.Minute)
		v, err := bc.Version(ctx, 4)
		require.NoError(t, err)
		require.Zero(t, v)

		fc.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("12", nil) }
		v, err = bc.Version(ctx, 4)
		require.NoError(t, err)
		require.Equal(t, int64(12), v)

		fc.GetFn = func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("conn refused"))
		}
		_, err = bc.Version(ctx, 4)
		require.ErrorContains(t, err, "conn refused")
	})

	t.Run("get errors", func(t *testing.T) {
		fc := &FakeCache{GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("conn refused"))
		}}
		_, _, err := NewBookCache(fc, time.Minute).Get(ctx, 4)
		require.ErrorContains(t, err, "conn refused")

		fc.GetFn = func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("{not json", nil)
		}
		_, _, err = NewBookCache(fc, time.Minute).Get(ctx, 4)
		require.Error(t, err)
	})

	t.Run("fill error", func(t *testing.T) {
		fc := &FakeCache{EvalFn: func(context.Context, string, []string, ...any) *redis.Cmd {
			return redis.NewCmdResult(nil, errors.New("readonly"))
		}}
		_, err := NewBookCache(fc, time.Minute).Fill(ctx, book, 0)
		require.ErrorContains(t, err, "readonly")
	})

	t.Run("invalidate bumps version before delete", func(t *testing.T) {
		var calls []string
		fc := &FakeCache{
			IncrFn: func(_ context.Context, key string) *redis.IntCmd {
				calls = append(calls, "incr "+key)
				return redis.NewIntResult(1, nil)
			},
			DelFn: func(_ context.Context, k ...string) *redis.IntCmd {
				calls = append(calls, "del "+k[0])
				return redis.NewIntResult(1, nil)
			},
		}
		require.NoError(t, NewBookCache(fc, time.Minute).Invalidate(ctx, 4))
		require.Equal(t, []string{"incr book:4:ver", "del book:4"}, calls)

		fc.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, errors.New("down")) }
		require.Error(t, NewBookCache(fc, time.Minute).Invalidate(ctx, 4))

		fc.IncrFn = func(context.Context, string) *redis.IntCmd { return redis.NewIntResult(0, errors.New("down")) }
		require.Error(t, NewBookCache(fc, time.Minute).Invalidate(ctx, 4))
	})
}
