package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"library-api/internal/model"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func bookKey(id int) string {
	return fmt.Sprintf("book:%d", id)
}

// bookVersionKey 每次書籍異動就 +1，回填前必須先讀取
func bookVersionKey(id int) string {
	return fmt.Sprintf("book:%d:ver", id)
}

// fillScript 版本號與讀取 DB 前相同才寫入，否則代表中間有異動，放棄回填
// KEYS[1]=book key, KEYS[2]=version key
// ARGV[1]=version, ARGV[2]=payload, ARGV[3]=ttl (ms, <=0 不過期)
const fillScript = `
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`

// BookCache 書籍單筆讀取的 read-through 快取
//
// 回填流程：Version → 讀 DB → Fill。Invalidate 會先遞增版本再刪除，
// 所以在異動之前讀到的舊資料無法覆蓋回去。
type BookCache struct {
	c   Cache
	ttl time.Duration
}

func NewBookCache(c Cache, ttl time.Duration) *BookCache {
	return &BookCache{c: c, ttl: ttl}
}

// Get 命中時回傳 (book, true, nil)；未命中回傳 (nil, false, nil)
func (b *BookCache) Get(ctx context.Context, id int) (*model.Book, bool, error) {
	raw, err := b.c.Get(ctx, bookKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("BookCache.Get: %w", err)
	}

	var book model.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, false, fmt.Errorf("BookCache.Get: %w", err)
	}
	return &book, true, nil
}

// Version 目前的版本號，從未異動過為 0
func (b *BookCache) Version(ctx context.Context, id int) (int64, error) {
	v, err := b.c.Get(ctx, bookVersionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("BookCache.Version: %w", err)
	}
	return v, nil
}

// Fill 只在版本仍為 version 時寫入，回傳是否寫入
func (b *BookCache) Fill(ctx context.Context, book *model.Book, version int64) (bool, error) {
	raw, err := json.Marshal(book)
	if err != nil {
		return false, fmt.Errorf("BookCache.Fill: %w", err)
	}
	n, err := b.c.Eval(ctx, fillScript,
		[]string{bookKey(book.ID), bookVersionKey(book.ID)},
		strconv.FormatInt(version, 10),
		raw,
		b.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("BookCache.Fill: %w", err)
	}
	return n == 1, nil
}

// Invalidate 遞增版本後刪除快取
func (b *BookCache) Invalidate(ctx context.Context, id int) error {
	if err := b.c.Incr(ctx, bookVersionKey(id)).Err(); err != nil {
		return fmt.Errorf("BookCache.Invalidate: %w", err)
	}
	if err := b.c.Del(ctx, bookKey(id)).Err(); err != nil {
		return fmt.Errorf("BookCache.Invalidate: %w", err)
	}
	return nil
}
