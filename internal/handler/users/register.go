package users

import (
	"net/http"

	"library-api/internal/api"
	"library-api/internal/handler"
	"library-api/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新帳號
// @Summary     Register a new user
// @Description 建立新帳號 (Email 會自動轉小寫)，role 不填則為 member
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/register [post]
func RegisterHandler(users UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		// 密碼雜湊與重複 email 檢查由 service 處理
		_, err := users.Register(c.Request().Context(), service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}

		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "User registered successfully"})
	}
}
