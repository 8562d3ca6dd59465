package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrant/core/internal/adapters/repository"
	"github.com/quadrant/core/internal/infrastructure/config"
	"github.com/quadrant/core/internal/infrastructure/logger"
	"github.com/quadrant/core/internal/ports"
	"github.com/quadrant/core/internal/testutil"
)

func newTestAuthService(t *testing.T) *AuthService {
	mr := miniredis.RunT(t)
	tokenRepo := repository.NewTokenRepository(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	jwtConfig := config.JWTConfig{
		Secret:           "test-secret-not-for-production",
		ExpiresIn:        15 * time.Minute,
		RefreshExpiresIn: time.Hour,
		Issuer:           "quadrant-test",
	}

	return NewAuthService(testutil.NewFakeUserRepo(), tokenRepo, jwtConfig, logger.NewNop())
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "user@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash, "password hash must never be serialized")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	req := ports.RegisterRequest{Email: "user@example.com", Password: "correct horse"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterRequest{Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, ports.LoginRequest{Email: "user@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, ports.LoginRequest{Email: "user@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, ports.LoginRequest{Email: "nobody@example.com", Password: "correct horse"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials", "unknown email and wrong password are indistinguishable")
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, ports.RegisterRequest{Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The presented token was single-use; replaying it fails.
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	require.Error(t, err)

	// The rotated token keeps working.
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "never-issued")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")
}

func TestLogoutRevokesAllRefreshTokens(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, ports.RegisterRequest{Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	loggedIn, err := svc.Login(ctx, ports.LoginRequest{Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.User.ID))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.Error(t, err)
	_, err = svc.RefreshToken(ctx, loggedIn.RefreshToken)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := svc.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID.String(), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestAuthService(t)
		otherResp, err := other.Register(ctx, ports.RegisterRequest{Email: "other@example.com", Password: "correct horse"})
		require.NoError(t, err)

		// Same signing algorithm, different secret: must be rejected.
		otherCfg := config.JWTConfig{Secret: "a-different-secret-entirely", ExpiresIn: time.Minute}
		stranger := NewAuthService(testutil.NewFakeUserRepo(), nil, otherCfg, logger.NewNop())

		_, err = stranger.ValidateToken(otherResp.AccessToken)
		require.Error(t, err)
	})
}
