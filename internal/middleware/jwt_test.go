package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

const jwtTestSecret = "jwt-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtTestSecret))
	require.NoError(t, err)
	return signed
}

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(jwtTestSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": UserID(c), "role": UserRole(c)})
	})
	return app
}

func TestJWTProtectedBindsClaims(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, jwt.MapClaims{
		"sub":  "u-1",
		"role": "Instructor",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]string
	decodeBody(t, resp, &payload)
	require.Equal(t, "u-1", payload["id"])
	require.Equal(t, "instructor", payload["role"])
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsBadSignature(t *testing.T) {
	app := newProtectedApp()

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1"})
	signed, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsMissingSubject(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, jwt.MapClaims{
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
