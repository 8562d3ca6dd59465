package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quadrant/core/internal/domain/entities"
)

// TodoRepository implements the todo repository interface on Postgres.
// Every query is scoped by user_id so foreign ids are indistinguishable
// from missing ones.
type TodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create creates a new todo
func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	query := `
		INSERT INTO todos (title, description, priority, due_date, completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		todo.Title,
		todo.Description,
		todo.Priority,
		todo.DueDate,
		todo.Completed,
		todo.UserID,
		todo.CreatedAt,
		todo.UpdatedAt,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// GetByID retrieves a todo by ID for the given owner
func (r *TodoRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Todo, error) {
	query := `
		SELECT id, title, description, priority, due_date, completed, user_id, created_at, updated_at
		FROM todos WHERE id = $1 AND user_id = $2
	`

	var todo entities.Todo
	err := r.db.GetContext(ctx, &todo, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &todo, nil
}

// Update updates a todo owned by todo.UserID
func (r *TodoRepository) Update(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	query := `
		UPDATE todos
		SET title = $3, description = $4, priority = $5, due_date = $6, completed = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Priority,
		todo.DueDate,
		todo.Completed,
		todo.UpdatedAt,
	).Scan(&todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// Delete removes a todo owned by userID
func (r *TodoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrTodoNotFound
	}

	return nil
}

// ListByUser retrieves a user's todos, newest first, capped at limit
func (r *TodoRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Todo, error) {
	query := `
		SELECT id, title, description, priority, due_date, completed, user_id, created_at, updated_at
		FROM todos WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	todos := []*entities.Todo{}
	err := r.db.SelectContext(ctx, &todos, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, nil
}
