package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"library-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var (
	timeNow         = time.Now
	newTokenID      = func() string { return ulid.Make().String() }
	parseWithClaims = jwt.ParseWithClaims
)

var ErrInvalidToken = errors.New("invalid token")

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// TokenManager 以 HS256 簽發與驗證存取權杖
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue 依據使用者資訊產生 JWT
func (m *TokenManager) Issue(user model.User) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("Issue: signing secret not set")
	}

	now := timeNow()
	claims := CustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify 驗證並解析 JWT，只接受 HS256 且必須帶 exp
func (m *TokenManager) Verify(tokenString string) (*CustomClaims, error) {
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("Verify: signing secret not set")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}
	token, err := parseWithClaims(tokenString, &CustomClaims{}, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
