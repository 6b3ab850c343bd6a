package books

import (
	"net/http"

	"library-api/internal/api"
	"library-api/internal/handler"
	"library-api/internal/model"

	"github.com/labstack/echo/v4"
)

// ListBooksHandler 列出書目
// @Summary     List books
// @Description 可依 title/author/genre 模糊搜尋，available=true 只列出可借的書
// @Tags        books
// @Produce     json
// @Param       title     query    string  false "書名關鍵字"
// @Param       author    query    string  false "作者關鍵字"
// @Param       genre     query    string  false "類別關鍵字"
// @Param       available query    boolean false "只列出可借"
// @Param       limit     query    int     false "筆數 (1-100)"
// @Param       offset    query    int     false "起始位置"
// @Success     200       {array}  model.Book
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books [get]
func ListBooksHandler(books BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var q api.BookListQuery
		if err := handler.BindAndValidate(c, &q); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, "invalid query parameters")
		}

		list, err := books.List(c.Request().Context(), model.BookFilter{
			Title:         q.Title,
			Author:        q.Author,
			Genre:         q.Genre,
			AvailableOnly: q.Available,
			Limit:         q.Limit,
			Offset:        q.Offset,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
