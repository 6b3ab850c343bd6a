package service

import (
	"context"
	"fmt"
	"log/slog"

	"library-api/internal/cache"
	"library-api/internal/database"
	"library-api/internal/model"
	"library-api/internal/store"
	"library-api/internal/worker"
)

var (
	storeListBooks   = store.ListBooks
	storeGetBookByID = store.GetBookByID
	storeCreateBook  = store.CreateBook
	storeUpdateBook  = store.UpdateBook
	storeDeleteBook  = store.DeleteBook
)

// BookService 書目 CRUD，單筆讀取走 Redis 快取
type BookService struct {
	db     database.DB
	cache  *cache.BookCache
	pool   worker.Pool
	logger *slog.Logger
}

func NewBookService(db database.DB, c *cache.BookCache, pool worker.Pool, logger *slog.Logger) *BookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookService{db: db, cache: c, pool: pool, logger: logger}
}

func (s *BookService) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return storeListBooks(ctx, s.db, f)
}

// Get 先讀快取，快取失敗時退回資料庫
func (s *BookService) Get(ctx context.Context, id int) (*model.Book, error) {
	var (
		version int64
		fill    bool
	)
	if s.cache != nil {
		book, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("book cache read failed", "book_id", id, "err", err)
		}
		if ok {
			return book, nil
		}
		// 版本號要在讀 DB 之前取得
		if version, err = s.cache.Version(ctx, id); err != nil {
			s.logger.Warn("book cache read failed", "book_id", id, "err", err)
		} else {
			fill = true
		}
	}

	book, err := storeGetBookByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if fill {
		s.fill(ctx, book, version)
	}
	return book, nil
}

func (s *BookService) fill(ctx context.Context, book *model.Book, version int64) {
	stored, err := s.cache.Fill(ctx, book, version)
	if err != nil {
		s.logger.Warn("book cache write failed", "book_id", book.ID, "err", err)
		return
	}
	if !stored {
		s.logger.Debug("book cache fill skipped, newer version exists", "book_id", book.ID, "version", version)
	}
}

func (s *BookService) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	created, err := storeCreateBook(ctx, s.db, b)
	if err != nil {
		return nil, err
	}
	s.logger.Info("book created", "book_id", created.ID)
	return created, nil
}

func (s *BookService) Update(ctx context.Context, b *model.Book) error {
	if err := storeUpdateBook(ctx, s.db, b); err != nil {
		return err
	}
	s.Changed(ctx, b.ID)
	return nil
}

func (s *BookService) Delete(ctx context.Context, id int) error {
	if err := storeDeleteBook(ctx, s.db, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// Changed 同步清除快取並排程背景回填
func (s *BookService) Changed(ctx context.Context, id int) {
	s.evict(ctx, id)
	if s.pool == nil || s.cache == nil {
		return
	}
	s.pool.Submit(func(ctx context.Context) {
		if err := s.refresh(ctx, id); err != nil {
			s.logger.Warn("book cache refresh failed", "book_id", id, "err", err)
		}
	})
}

func (s *BookService) evict(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("book cache evict failed", "book_id", id, "err", err)
	}
}

func (s *BookService) refresh(ctx context.Context, id int) error {
	version, err := s.cache.Version(ctx, id)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	book, err := storeGetBookByID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	s.fill(ctx, book, version)
	return nil
}
