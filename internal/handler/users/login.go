package users

import (
	"net/http"

	"library-api/internal/api"
	"library-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 驗證帳密後回傳存取令牌；帳號不存在與密碼錯誤回傳相同訊息
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(users UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.JSONError(c, http.StatusBadRequest, err.Error())
		}

		token, _, err := users.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{Message: "Login successful", Token: token})
	}
}
