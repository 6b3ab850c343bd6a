package books

import (
	"errors"
	"net/http"

	"library-api/internal/api"
	"library-api/internal/handler"
	"library-api/internal/store"

	"github.com/labstack/echo/v4"
)

// UpdateBookHandler 整筆更新書籍（管理員）
// @Summary     Update a book
// @Tags        books
// @Accept      json
// @Produce     json
// @Param       id   path     int             true "Book ID"
// @Param       body body     api.BookRequest true "書籍資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books/{id} [put]
func UpdateBookHandler(books BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		var req api.BookRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		book := toModel(req)
		book.ID = id
		err = books.Update(c.Request().Context(), book)
		if errors.Is(err, store.ErrNotFound) {
			return handler.JSONError(c, http.StatusNotFound, "book not found")
		}
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Book updated successfully"})
	}
}
