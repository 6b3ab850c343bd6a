package middleware

import (
	"net/http"
	"strings"

	"library-api/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier 由 service.TokenManager 實作
type TokenVerifier interface {
	Verify(token string) (*service.CustomClaims, error)
}

// Guard 驗證存取權杖並區分一般使用者與管理員
type Guard struct {
	tokens TokenVerifier
}

func NewGuard(tokens TokenVerifier) *Guard {
	return &Guard{tokens: tokens}
}

// bearerToken 接受 "Bearer <token>"（不分大小寫）或直接帶 token
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	if strings.Contains(header, " ") {
		return ""
	}
	return header
}

func (g *Guard) extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	tokenString := bearerToken(authHeader)
	if tokenString == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := g.tokens.Verify(tokenString)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := g.extractClaims(c)
		if err != nil {
			return err
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// RequireAdmin 先做 RequireAuth，再檢查角色
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.RequireAuth(func(c echo.Context) error {
		claims := c.Get(ContextUserKey).(*service.CustomClaims)
		if !claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	})
}

// CurrentUser 取出 RequireAuth 放入的 claims
func CurrentUser(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims != nil
}
