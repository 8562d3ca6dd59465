package ports

import (
	"time"

	"github.com/quadrant/core/internal/domain/entities"
)

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the payload for authenticating
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	TokenType    string         `json:"tokenType"`
	ExpiresIn    int64          `json:"expiresIn"`
	User         *entities.User `json:"user,omitempty"`
}

// CreateTodoRequest is the payload for creating a todo.
// DueDate is optional; the service defaults it to the end of the creation day.
type CreateTodoRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Priority    entities.Priority `json:"priority"`
	DueDate     *time.Time        `json:"dueDate"`
}

// UpdateTodoRequest is the payload for partially updating a todo.
// Nil fields are left untouched.
type UpdateTodoRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Priority    *entities.Priority `json:"priority"`
	DueDate     *time.Time         `json:"dueDate"`
	Completed   *bool              `json:"completed"`
}
