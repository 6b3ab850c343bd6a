package books

import (
	"context"

	"library-api/internal/api"
	"library-api/internal/model"
)

// BookService 由 *service.BookService 實作
type BookService interface {
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Get(ctx context.Context, id int) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int) error
}

func toModel(req api.BookRequest) *model.Book {
	return &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		AvailableCopies: req.AvailableCopies,
	}
}
