package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fakeBlacklist struct {
	revoked map[string]bool
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func authRouter(blacklist TokenBlacklist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(testSecret, blacklist), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetString(CtxUserID),
			"email": c.GetString(CtxUserEmail),
			"role":  c.GetString(CtxUserRole),
		})
	})
	return r
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := authRouter(&fakeBlacklist{revoked: map[string]bool{}})
	token := signToken(t, jwt.MapClaims{
		"id":    "66f0b2f1a1b2c3d4e5f60718",
		"email": "user@example.com",
		"role":  "user",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user@example.com")
	require.Contains(t, w.Body.String(), "66f0b2f1a1b2c3d4e5f60718")
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := authRouter(&fakeBlacklist{revoked: map[string]bool{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	r := authRouter(&fakeBlacklist{revoked: map[string]bool{}})
	token := signToken(t, jwt.MapClaims{
		"id":  "66f0b2f1a1b2c3d4e5f60718",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	r := authRouter(&fakeBlacklist{revoked: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":  "66f0b2f1a1b2c3d4e5f60718",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	r := authRouter(&fakeBlacklist{revoked: map[string]bool{token: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHMACKeyfuncRejectsOtherMethods(t *testing.T) {
	claims := jwt.MapClaims{
		"id":  "66f0b2f1a1b2c3d4e5f60718",
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = jwt.Parse(unsigned, HMACKeyfunc(testSecret))
	require.ErrorContains(t, err, "unexpected signing method")

	hmacSigned := signToken(t, claims)
	token, err := jwt.Parse(hmacSigned, HMACKeyfunc(testSecret))
	require.NoError(t, err)
	require.True(t, token.Valid)
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) { c.Set(CtxUserRole, "user") }, AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin-ok", func(c *gin.Context) { c.Set(CtxUserRole, "admin") }, AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
