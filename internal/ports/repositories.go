package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quadrant/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TodoRepository defines the interface for todo data operations.
// All lookups are scoped to an owner: an id belonging to a different user
// behaves exactly like a missing id.
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) (*entities.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Todo, error)
}

// TokenRepository defines the interface for refresh token storage
type TokenRepository interface {
	Store(ctx context.Context, token *entities.RefreshToken, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (*entities.RefreshToken, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
