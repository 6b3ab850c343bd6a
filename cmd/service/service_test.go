package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"library-api/internal/cache"
	"library-api/internal/config"
	"library-api/internal/database"
	"library-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool = worker.NewPool
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext = func(ctx context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		return context.WithCancel(ctx)
	}
	logOutput = io.Discard
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               9090,
		DatabaseURL:        "postgres://db",
		RedisAddr:          "127",
		RedisPassword:      "pw",
		RedisDB:            1,
		JWTSecret:          "secret",
		TokenTTL:           time.Hour,
		LoanLimit:          3,
		LateFeePerDay:      10,
		AllowAdminSignup:   true,
		WorkerCount:        1,
		BookCacheTTL:       time.Minute,
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           "info",
		LogFormat:          "json",
		ShutdownTimeout:    time.Second,
	}
}

// stubDeps 以假實作取代所有外部相依
func stubDeps(t *testing.T, called map[string]bool) {
	t.Helper()
	loadConfig = func() (*config.Config, error) { return testConfig(), nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "postgres://db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(_ context.Context, addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	newWorkerPool = func(n, queue int, logger *slog.Logger) worker.Pool {
		called["workers"] = true
		return worker.NewPool(n, queue, logger)
	}
}

func TestRunSuccess(t *testing.T) {
	restoreGlobals()
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	stubDeps(t, called)
	var gotAddr string
	routes := map[string]bool{}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		gotAddr = addr
		for _, r := range e.Routes() {
			routes[r.Method+" "+r.Path] = true
		}
		return http.ErrServerClosed
	}

	require.NoError(t, run())
	require.Equal(t, ":9090", gotAddr)
	require.True(t, routes["GET /swagger/*"])
	require.True(t, routes["POST /api/issue"])
	require.True(t, routes["GET /api/issue/my"])
	for _, k := range []string{"pgx", "redis", "migrate", "workers", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
}

func TestRunGracefulShutdown(t *testing.T) {
	restoreGlobals()
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	stubDeps(t, called)

	release := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		<-release
		return http.ErrServerClosed
	}
	shutdownServer = func(ctx context.Context, _ *echo.Echo) error {
		_, hasDeadline := ctx.Deadline()
		require.True(t, hasDeadline)
		close(release)
		return nil
	}
	// 模擬收到 SIGTERM
	notifyContext = func(ctx context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}

	require.NoError(t, run())
	require.True(t, called["dbClose"])
}

func TestRunErrors(t *testing.T) {
	restoreGlobals()
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.ErrorContains(t, run(), "config")

	stubDeps(t, called)
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.ErrorContains(t, run(), "migrate")

	runMigrationsFn = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.ErrorContains(t, run(), "db")

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.ErrorContains(t, run(), "redis")

	newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	startServer = func(*echo.Echo, string) error { return errors.New("bind: address in use") }
	require.ErrorContains(t, run(), "address in use")

	hang := make(chan struct{})
	t.Cleanup(func() { close(hang) })
	startServer = func(*echo.Echo, string) error { <-hang; return nil }
	notifyContext = func(ctx context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}
	shutdownServer = func(context.Context, *echo.Echo) error { return errors.New("shutdown") }
	require.ErrorContains(t, run(), "shutdown")
}

func TestMainFunction(t *testing.T) {
	restoreGlobals()
	t.Cleanup(restoreGlobals)
	stubDeps(t, map[string]bool{})
	startServer = func(*echo.Echo, string) error { return nil }
	main()
}

func TestMainExit(t *testing.T) {
	restoreGlobals()
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	loadConfig = func() (*config.Config, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
