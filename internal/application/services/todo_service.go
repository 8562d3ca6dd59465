package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quadrant/core/internal/domain/entities"
	"github.com/quadrant/core/internal/infrastructure/logger"
	"github.com/quadrant/core/internal/ports"
)

// ListLimit caps GET /todos to the user's most recent items. Clients must
// not assume they receive the complete history.
const ListLimit = 20

// TodoService handles todo operations
type TodoService struct {
	todoRepo ports.TodoRepository
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// CreateTodo creates a new todo for the given owner. Priority defaults to
// medium and a missing due date defaults to the end of the creation day.
func (s *TodoService) CreateTodo(ctx context.Context, userID uuid.UUID, req ports.CreateTodoRequest) (*entities.Todo, error) {
	if req.Title == "" {
		return nil, entities.ErrTitleRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	now := time.Now()

	dueDate := endOfDay(now)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	todo := &entities.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
		Completed:   false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	createdTodo, err := s.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("Todo created successfully", "todo_id", createdTodo.ID, "user_id", userID)

	return createdTodo, nil
}

// GetTodo retrieves a todo by ID, scoped to the owner
func (s *TodoService) GetTodo(ctx context.Context, userID, id uuid.UUID) (*entities.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// UpdateTodo applies a partial update to a todo. Nil request fields leave
// the stored values untouched; updated_at is always bumped.
func (s *TodoService) UpdateTodo(ctx context.Context, userID, id uuid.UUID, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	existing, err := s.todoRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, entities.ErrTitleRequired
		}
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, entities.ErrInvalidPriority
		}
		existing.Priority = *req.Priority
	}
	if req.DueDate != nil {
		existing.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		existing.Completed = *req.Completed
	}

	existing.UpdatedAt = time.Now()

	updatedTodo, err := s.todoRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Todo updated successfully", "todo_id", updatedTodo.ID, "user_id", userID)

	return updatedTodo, nil
}

// DeleteTodo hard-deletes a todo. Deleting an id the owner does not hold
// returns ErrTodoNotFound, so repeat deletes are not idempotent.
func (s *TodoService) DeleteTodo(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.todoRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("Todo deleted successfully", "todo_id", id, "user_id", userID)

	return nil
}

// ListTodos retrieves the owner's todos, newest first, capped at ListLimit
func (s *TodoService) ListTodos(ctx context.Context, userID uuid.UUID) ([]*entities.Todo, error) {
	todos, err := s.todoRepo.ListByUser(ctx, userID, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, nil
}

// endOfDay returns the last representable instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
