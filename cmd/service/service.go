// @title        Library API
// @version      1.0
// @description  圖書館借還書系統的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"library-api/internal/cache"
	"library-api/internal/config"
	"library-api/internal/database"
	"library-api/internal/logging"
	"library-api/internal/middleware"
	"library-api/internal/router"
	"library-api/internal/service"
	"library-api/internal/worker"

	"github.com/labstack/echo/v4"

	_ "library-api/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// workerQueueSize 背景工作佇列長度，滿了就丟棄快取回填
const workerQueueSize = 64

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext   = signal.NotifyContext
	logOutput       io.Writer = os.Stdout
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := logging.New(logOutput, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	wp := newWorkerPool(cfg.WorkerCount, workerQueueSize, logger)
	defer wp.Stop()

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	books := service.NewBookService(db, cache.NewBookCache(rdb, cfg.BookCacheTTL), wp, logger)
	loans := service.NewLoanService(db, service.LoanPolicy{
		MaxOutstanding: cfg.LoanLimit,
		FeePerDay:      cfg.LateFeePerDay,
	}, books, logger)

	e := router.NewEcho(logger, cfg.CORSAllowedOrigins)
	router.Setup(e, router.Deps{
		DB:    db,
		Cache: rdb,
		Guard: middleware.NewGuard(tokens),
		Users: service.NewUserService(db, tokens, cfg.AllowAdminSignup),
		Books: books,
		Loans: loans,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.HTTPAddress())
		errCh <- startServer(e, cfg.HTTPAddress())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服務啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("HTTP 服務關閉失敗: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
