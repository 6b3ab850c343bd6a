package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists 違反唯一約束
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInUse 仍被其他資料表參照，無法刪除
	ErrInUse = errors.New("record is still referenced")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError 將 pgx 錯誤轉為 store 層的 sentinel error
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAlreadyExists
		case pgForeignKeyViolation:
			return ErrInUse
		}
	}
	return err
}
