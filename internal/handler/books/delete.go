package books

import (
	"errors"
	"net/http"

	"library-api/internal/api"
	"library-api/internal/handler"
	"library-api/internal/store"

	"github.com/labstack/echo/v4"
)

// DeleteBookHandler 刪除書籍（管理員）；仍有借閱紀錄時拒絕
// @Summary     Delete a book
// @Tags        books
// @Produce     json
// @Param       id  path     int true "Book ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books/{id} [delete]
func DeleteBookHandler(books BookService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		err = books.Delete(c.Request().Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return handler.JSONError(c, http.StatusNotFound, "book not found")
		case errors.Is(err, store.ErrInUse):
			return handler.JSONError(c, http.StatusBadRequest, "book has issue records and cannot be deleted")
		case err != nil:
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Book deleted successfully"})
	}
}
