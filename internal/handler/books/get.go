package books

import (
	"errors"
	"net/http"

	"library-api/internal/handler"
	"library-api/internal/store"

	"github.com/labstack/echo/v4"
)

// GetBookHandler 取得單一書籍
// @Summary     Get book by ID
// @Tags        books
// @Produce     json
// @Param       id  path     int true "Book ID"
// @Success     200 {object} model.Book
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books/{id} [get]
func GetBookHandler(books BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		book, err := books.Get(c.Request().Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.JSONError(c, http.StatusNotFound, "book not found")
		}
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, book)
	}
}
