package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinbech/internal/config"
	"kinbech/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func callWithAuth(t *testing.T, authz string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

// Test: 正しいBearerトークンなら通り、contextにusernameとrolesが入る
func TestAuthJWTValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	signed := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "alice",
		"roles": "buyer,seller",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := AuthJWT(cfg)(func(c echo.Context) error {
		assert.Equal(t, "alice", c.Get(CtxUsernameKey))
		roles, ok := c.Get(CtxRolesKey).(model.RoleSet)
		require.True(t, ok)
		assert.True(t, roles.Has(model.RoleSeller))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Test: ヘッダなし・形式違い・別鍵・期限切れは401
func TestAuthJWTRejects(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	mw := AuthJWT(cfg)

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "alice",
		"roles": "buyer",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub":   "alice",
		"roles": "buyer",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	cases := map[string]string{
		"ヘッダなし":    "",
		"Bearer以外": "Basic abc",
		"トークン空":    "Bearer ",
		"別の鍵":      "Bearer " + wrongKey,
		"期限切れ":     "Bearer " + expired,
	}
	for name, authz := range cases {
		t.Run(name, func(t *testing.T) {
			rec := callWithAuth(t, authz, mw)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

// Test: RoleGuardは役割がなければ403、contextが空なら401
func TestRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	buyerOnly := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "alice",
		"roles": "buyer",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec := callWithAuth(t, "Bearer "+buyerOnly, AuthJWT(cfg), RoleGuard(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin only")

	rec = callWithAuth(t, "Bearer "+buyerOnly, AuthJWT(cfg), RoleGuard(model.RoleBuyer))
	assert.Equal(t, http.StatusOK, rec.Code)

	//AuthJWTを通っていない（contextが空の）場合
	rec = callWithAuth(t, "", RoleGuard(model.RoleBuyer))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
