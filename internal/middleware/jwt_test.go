package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/middleware"
	"github.com/leadforge/b2b-api/internal/utils"
)

const jwtTestSecret = "test-secret"

func protectedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, middleware.JWTAuth(jwtTestSecret))
	return e
}

func TestJWTAuthValidToken(t *testing.T) {
	e := protectedEcho()
	access, err := utils.NewAccessToken(jwtTestSecret, "3f1c9f0a-90f5-4f2a-9c51-6f7a2d3b8e11", "USER", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "3f1c9f0a-90f5-4f2a-9c51-6f7a2d3b8e11")
	assert.Contains(t, rec.Body.String(), "USER")
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := protectedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	e := protectedEcho()
	access, err := utils.NewAccessToken("other-secret", "some-user", "USER", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	e := protectedEcho()
	claims := jwt.MapClaims{
		"sub":  "some-user",
		"role": "USER",
		"exp":  time.Now().UTC().Add(-time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsEmptySubject(t *testing.T) {
	e := protectedEcho()
	// Handlers rely on a non-empty string subject; a token without one must
	// not pass the middleware.
	claims := jwt.MapClaims{
		"role": "USER",
		"exp":  time.Now().UTC().Add(time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
