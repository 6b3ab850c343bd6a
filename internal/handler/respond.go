package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"library-api/internal/api"
	"library-api/internal/service"
	"library-api/internal/store"

	"github.com/labstack/echo/v4"
)

// errorStatus 已知錯誤對應的 HTTP 狀態；訊息取 sentinel 本身，不含包裝前綴
var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrBookNotFound, http.StatusNotFound},
	{service.ErrNoActiveIssue, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrNoCopiesAvailable, http.StatusBadRequest},
	{service.ErrBorrowLimitExceeded, http.StatusBadRequest},
	{service.ErrEmailInUse, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusBadRequest},
	{service.ErrInvalidRole, http.StatusBadRequest},
	{service.ErrAdminSignupDisabled, http.StatusForbidden},
	{store.ErrNotFound, http.StatusNotFound},
	{store.ErrAlreadyExists, http.StatusBadRequest},
	{store.ErrInUse, http.StatusBadRequest},
}

// JSONError 輸出 {"message": ...}
func JSONError(c echo.Context, status int, message string) error {
	return c.JSON(status, api.ErrorResponse{Message: message})
}

// RespondError 將 service/store 錯誤轉成對應狀態碼；未知錯誤記錄後回 500
func RespondError(c echo.Context, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return JSONError(c, e.status, e.err.Error())
		}
	}

	slog.ErrorContext(c.Request().Context(), "request failed",
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"method", c.Request().Method,
		"path", c.Path(),
		"err", err,
	)
	return JSONError(c, http.StatusInternalServerError, "internal server error")
}

// ParamID 解析路徑上的正整數 id
func ParamID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// BindAndValidate 綁定請求並執行 validator
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
