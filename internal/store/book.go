package store

import (
	"context"
	"fmt"
	"strings"

	"library-api/internal/database"
	"library-api/internal/model"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
)

// MaxBookPageSize 書目列表單頁上限
const MaxBookPageSize = 100

var (
	pgDialect   = goqu.Dialect("postgres")
	bookColumns = []any{"id", "title", "author", "genre", "publication_year", "available_copies", "created_at", "updated_at"}
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.PublicationYear,
		&b.AvailableCopies,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildListBooksQuery 依 filter 組出帶 $n 參數的查詢
func buildListBooksQuery(f model.BookFilter) (string, []any, error) {
	ds := pgDialect.From("books").Prepared(true).
		Select(bookColumns...).
		Order(goqu.I("id").Asc())

	if f.Title != "" {
		ds = ds.Where(goqu.I("title").ILike(containsPattern(f.Title)))
	}
	if f.Author != "" {
		ds = ds.Where(goqu.I("author").ILike(containsPattern(f.Author)))
	}
	if f.Genre != "" {
		ds = ds.Where(goqu.I("genre").ILike(containsPattern(f.Genre)))
	}
	if f.AvailableOnly {
		ds = ds.Where(goqu.I("available_copies").Gt(0))
	}

	limit := f.Limit
	if limit == 0 || limit > MaxBookPageSize {
		limit = MaxBookPageSize
	}
	ds = ds.Limit(limit)
	if f.Offset > 0 {
		ds = ds.Offset(f.Offset)
	}
	return ds.ToSQL()
}

func ListBooks(ctx context.Context, db database.Querier, f model.BookFilter) ([]model.Book, error) {
	query, args, err := buildListBooksQuery(f)
	if err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("ListBooks: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}
	return books, nil
}

func GetBookByID(ctx context.Context, db database.Querier, id int) (*model.Book, error) {
	b := &model.Book{}
	row := db.QueryRow(ctx,
		`SELECT id, title, author, genre, publication_year, available_copies, created_at, updated_at
		 FROM books WHERE id = $1`,
		id,
	)
	if err := scanBook(row, b); err != nil {
		return nil, fmt.Errorf("GetBookByID: %w", mapError(err))
	}
	return b, nil
}

func CreateBook(ctx context.Context, db database.Querier, b *model.Book) (*model.Book, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO books (title, author, genre, publication_year, available_copies)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		b.Title,
		b.Author,
		b.Genre,
		b.PublicationYear,
		b.AvailableCopies,
	)
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateBook: %w", mapError(err))
	}
	return b, nil
}

// UpdateBook 整筆覆寫（含 available_copies），找不到時回傳 ErrNotFound
func UpdateBook(ctx context.Context, db database.Querier, b *model.Book) error {
	tag, err := db.Exec(ctx,
		`UPDATE books SET
		     title = $1,
		     author = $2,
		     genre = $3,
		     publication_year = $4,
		     available_copies = $5,
		     updated_at = now()
		 WHERE id = $6`,
		b.Title,
		b.Author,
		b.Genre,
		b.PublicationYear,
		b.AvailableCopies,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateBook: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateBook: %w", ErrNotFound)
	}
	return nil
}

// DeleteBook 仍有借閱紀錄時回傳 ErrInUse
func DeleteBook(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteBook: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteBook: %w", ErrNotFound)
	}
	return nil
}

// LockBookCopies 鎖定書籍列並回傳目前可借數量，需在交易內呼叫
func LockBookCopies(ctx context.Context, db database.Querier, id int) (int, error) {
	var copies int
	if err := db.QueryRow(ctx,
		`SELECT available_copies FROM books WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&copies); err != nil {
		return 0, fmt.Errorf("LockBookCopies: %w", mapError(err))
	}
	return copies, nil
}

// DecrementAvailableCopies 僅在 available_copies > 0 時扣一，回傳是否成功扣減
func DecrementAvailableCopies(ctx context.Context, db database.Querier, id int) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE books SET available_copies = available_copies - 1, updated_at = now()
		 WHERE id = $1 AND available_copies > 0`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("DecrementAvailableCopies: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func IncrementAvailableCopies(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx,
		`UPDATE books SET available_copies = available_copies + 1, updated_at = now()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("IncrementAvailableCopies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("IncrementAvailableCopies: %w", ErrNotFound)
	}
	return nil
}
