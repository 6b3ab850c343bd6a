package issue

import (
	"context"
	"errors"
	"net/http"
	"time"

	"library-api/internal/api"
	"library-api/internal/handler"
	"library-api/internal/middleware"
	"library-api/internal/model"

	"github.com/labstack/echo/v4"
)

// LoanService 由 *service.LoanService 實作
type LoanService interface {
	IssueBook(ctx context.Context, userID, bookID int, due time.Time) (int, error)
	ReturnBook(ctx context.Context, userID, bookID int) (int, error)
	ListAll(ctx context.Context) ([]model.LoanView, error)
	ListForUser(ctx context.Context, userID int) ([]model.LoanView, error)
}

var errInvalidDueDate = errors.New("due_date must be YYYY-MM-DD or RFC3339")

// parseDueDate 接受 2006-01-02 或 RFC3339
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidDueDate
}

// IssueBookHandler 借書
// @Summary     Issue a book
// @Description 為目前登入的使用者借出一本書；庫存為 0 或已達借閱上限時失敗
// @Tags        issue
// @Accept      json
// @Produce     json
// @Param       body body     api.IssueRequest true "借書資料"
// @Success     201  {object} api.IssueResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /issue [post]
func IssueBookHandler(loans LoanService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.JSONError(c, http.StatusUnauthorized, "invalid or missing token")
		}

		var req api.IssueRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		issueID, err := loans.IssueBook(c.Request().Context(), claims.UserID, req.BookID, due)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.IssueResponse{Message: "Book issued successfully", IssueID: issueID})
	}
}

// ReturnBookHandler 還書
// @Summary     Return a book
// @Description 歸還最早借出且未還的那一筆，逾期費以每日費率計算，不足一天以一天計
// @Tags        issue
// @Accept      json
// @Produce     json
// @Param       body body     api.ReturnRequest true "還書資料"
// @Success     200  {object} api.ReturnResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /issue/return [post]
func ReturnBookHandler(loans LoanService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.JSONError(c, http.StatusUnauthorized, "invalid or missing token")
		}

		var req api.ReturnRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		fee, err := loans.ReturnBook(c.Request().Context(), claims.UserID, req.BookID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.ReturnResponse{Message: "Book returned successfully", LateFee: fee})
	}
}
