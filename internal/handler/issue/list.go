package issue

import (
	"net/http"

	"library-api/internal/handler"
	"library-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ListAllIssuesHandler 所有借閱紀錄（管理員）
// @Summary     List all issues
// @Tags        issue
// @Produce     json
// @Success     200 {array}  model.LoanView
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /issue/all [get]
func ListAllIssuesHandler(loans LoanService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := loans.ListAll(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// ListMyIssuesHandler 目前使用者的借閱紀錄
// @Summary     List my issues
// @Tags        issue
// @Produce     json
// @Success     200 {array}  model.LoanView
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /issue/my [get]
func ListMyIssuesHandler(loans LoanService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.JSONError(c, http.StatusUnauthorized, "invalid or missing token")
		}

		list, err := loans.ListForUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
