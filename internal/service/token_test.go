package service

import (
	"errors"
	"testing"
	"time"

	"library-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerIssue(t *testing.T) {
	t.Cleanup(restoreGlobals)

	_, err := NewTokenManager("", time.Minute).Issue(model.User{ID: 1})
	require.Error(t, err)

	newTokenID = func() string { return "01HZX" }
	m := NewTokenManager("s", time.Hour)
	require.Equal(t, time.Hour, m.TTL())

	tok, err := m.Issue(model.User{ID: 5, Role: model.RoleAdmin})
	require.NoError(t, err)

	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, model.RoleAdmin, claims.Role)
	require.True(t, claims.IsAdmin())
	require.Equal(t, "5", claims.Subject)
	require.Equal(t, "01HZX", claims.ID)
	require.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestTokenManagerVerify(t *testing.T) {
	t.Cleanup(restoreGlobals)
	m := NewTokenManager("s", time.Minute)

	_, err := NewTokenManager("", time.Minute).Verify("abc")
	require.Error(t, err)

	_, err = m.Verify("invalid")
	require.ErrorIs(t, err, ErrInvalidToken)

	// alg=none 必須被拒絕
	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = m.Verify(tokNone)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 不同密鑰簽發
	forged, err := NewTokenManager("other", time.Minute).Issue(model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = m.Verify(forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 已過期
	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.Issue(model.User{ID: 1})
	require.NoError(t, err)
	timeNow = time.Now
	_, err = m.Verify(expired)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 沒有 exp 的 token 不可永久有效
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{UserID: 1, Role: model.RoleAdmin}).SignedString([]byte("s"))
	require.NoError(t, err)
	_, err = m.Verify(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 同一把密鑰但非 HS256
	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, CustomClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("s"))
	require.NoError(t, err)
	_, err = m.Verify(hs384)
	require.ErrorIs(t, err, ErrInvalidToken)

	parseWithClaims = func(_ string, _ jwt.Claims, _ jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		require.Len(t, opts, 2)
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = m.Verify("whatever")
	require.True(t, errors.Is(err, ErrInvalidToken))

	parseWithClaims = jwt.ParseWithClaims
	tok, err := m.Issue(model.User{ID: 3, Role: model.RoleMember})
	require.NoError(t, err)
	claims, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, 3, claims.UserID)
	require.False(t, claims.IsAdmin())
}
