package books

import (
	"net/http"

	"library-api/internal/api"
	"library-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// CreateBookHandler 新增書籍（管理員）
// @Summary     Add a book
// @Tags        books
// @Accept      json
// @Produce     json
// @Param       body body     api.BookRequest true "書籍資料"
// @Success     201  {object} api.CreateBookResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books [post]
func CreateBookHandler(books BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.BookRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		created, err := books.Create(c.Request().Context(), toModel(req))
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.CreateBookResponse{Message: "Book added successfully", BookID: created.ID})
	}
}
