package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/quadrant/core/internal/domain/entities"
)

const (
	tokenKeyPrefix   = "refresh_token:"
	userTokensPrefix = "user_tokens:"
)

// TokenRepository stores hashed refresh tokens in Redis with a TTL
// matching the refresh expiry. A per-user set tracks the user's live
// token hashes so logout can revoke them all.
type TokenRepository struct {
	client *redis.Client
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

// Store saves a refresh token under its hash
func (r *TokenRepository) Store(ctx context.Context, token *entities.RefreshToken, ttl time.Duration) error {
	key := tokenKeyPrefix + token.TokenHash
	userKey := userTokensPrefix + token.UserID.String()

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key,
		"user_id", token.UserID.String(),
		"expires_at", token.ExpiresAt.UTC().Format(time.RFC3339),
	)
	pipe.Expire(ctx, key, ttl)
	pipe.SAdd(ctx, userKey, token.TokenHash)
	pipe.Expire(ctx, userKey, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Get retrieves a refresh token by its hash
func (r *TokenRepository) Get(ctx context.Context, tokenHash string) (*entities.RefreshToken, error) {
	key := tokenKeyPrefix + tokenHash

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if len(fields) == 0 {
		return nil, entities.ErrTokenNotFound
	}

	userID, err := uuid.Parse(fields["user_id"])
	if err != nil {
		return nil, fmt.Errorf("corrupt refresh token record: %w", err)
	}

	expiresAt, err := time.Parse(time.RFC3339, fields["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt refresh token record: %w", err)
	}

	return &entities.RefreshToken{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Delete removes a single refresh token
func (r *TokenRepository) Delete(ctx context.Context, tokenHash string) error {
	token, err := r.Get(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, entities.ErrTokenNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tokenKeyPrefix+tokenHash)
	pipe.SRem(ctx, userTokensPrefix+token.UserID.String(), tokenHash)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}

// DeleteByUser revokes all refresh tokens issued to a user
func (r *TokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	userKey := userTokensPrefix + userID.String()

	hashes, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list user tokens: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, hash := range hashes {
		pipe.Del(ctx, tokenKeyPrefix+hash)
	}
	pipe.Del(ctx, userKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}
