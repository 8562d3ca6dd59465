package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrant/core/internal/application/services"
	"github.com/quadrant/core/internal/infrastructure/config"
	"github.com/quadrant/core/internal/infrastructure/logger"
)

const testSecret = "middleware-test-secret"

func signTestToken(t *testing.T, secret string, userID uuid.UUID, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := &services.Claims{
		UserID: userID.String(),
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runAuthMiddleware(t *testing.T, authHeader string) (echo.Context, error) {
	t.Helper()

	authService := services.NewAuthService(nil, nil, config.JWTConfig{
		Secret:    testSecret,
		ExpiresIn: 15 * time.Minute,
	}, logger.NewNop())

	s := &Server{logger: logger.NewNop()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := s.authMiddleware(authService)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return c, handler(c)
}

func middlewareStatus(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	t.Run("missing header", func(t *testing.T) {
		_, err := runAuthMiddleware(t, "")
		assert.Equal(t, http.StatusUnauthorized, middlewareStatus(t, err))
	})

	t.Run("malformed header", func(t *testing.T) {
		_, err := runAuthMiddleware(t, "Token abc123")
		assert.Equal(t, http.StatusUnauthorized, middlewareStatus(t, err))
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestToken(t, testSecret, userID, -time.Minute)
		_, err := runAuthMiddleware(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, middlewareStatus(t, err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signTestToken(t, "some-other-secret", userID, time.Minute)
		_, err := runAuthMiddleware(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, middlewareStatus(t, err))
	})

	t.Run("valid token reaches handler with caller set", func(t *testing.T) {
		token := signTestToken(t, testSecret, userID, time.Minute)
		c, err := runAuthMiddleware(t, "Bearer "+token)

		require.NoError(t, err)
		assert.Equal(t, userID.String(), c.Get("user"))
		assert.Equal(t, "user@example.com", c.Get("user_email"))
	})
}
