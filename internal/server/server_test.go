package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestApp(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	tokens, err := token.NewService("unit-test-secret", token.DefaultTTL)
	require.NoError(t, err)

	s := &Server{tokens: tokens}
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})
	return s, app
}

func TestAuthRequired_MissingToken(t *testing.T) {
	_, app := authTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	_, app := authTestApp(t)

	for _, bad := range []string{"garbage", "a.b.c"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeader, bad)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token %q", bad)
	}
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	_, app := authTestApp(t)

	other, err := token.NewService("different-secret", token.DefaultTTL)
	require.NoError(t, err)
	forged, err := other.Issue(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	tokens, err := token.NewService("unit-test-secret", time.Nanosecond)
	require.NoError(t, err)

	s := &Server{tokens: tokens}
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	expired, err := tokens.Issue(1)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	s, app := authTestApp(t)

	tokenString, err := s.tokens.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeader, tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
