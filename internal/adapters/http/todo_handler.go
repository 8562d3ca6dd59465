package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/quadrant/core/internal/application/services"
	"github.com/quadrant/core/internal/domain/entities"
	"github.com/quadrant/core/internal/infrastructure/logger"
	"github.com/quadrant/core/internal/ports"
)

// TodoHandler handles todo-related requests. All operations are scoped to
// the authenticated caller; a foreign id yields 404, never 403.
type TodoHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos returns the caller's todos, newest first, capped at 20
func (h *TodoHandler) ListTodos(c echo.Context) error {
	userID := getUserIDFromContext(c)

	todos, err := h.todoService.ListTodos(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List todos failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch todos")
	}

	return c.JSON(http.StatusOK, todos)
}

// CreateTodo creates a todo for the caller
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create todo failed", "error", err, "user_id", userID)
		if errors.Is(err, entities.ErrTitleRequired) || errors.Is(err, entities.ErrInvalidPriority) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create todo")
	}

	return c.JSON(http.StatusCreated, todo)
}

// GetTodo returns a single todo owned by the caller
func (h *TodoHandler) GetTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid todo ID")
	}

	todo, err := h.todoService.GetTodo(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		h.logger.Error("Get todo failed", "error", err, "todo_id", id, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch todo")
	}

	return c.JSON(http.StatusOK, todo)
}

// UpdateTodo applies a partial update to a todo owned by the caller
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid todo ID")
	}

	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), userID, id, req)
	if err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		if errors.Is(err, entities.ErrTitleRequired) || errors.Is(err, entities.ErrInvalidPriority) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error("Update todo failed", "error", err, "todo_id", id, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update todo")
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes a todo owned by the caller
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid todo ID")
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		h.logger.Error("Delete todo failed", "error", err, "todo_id", id, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete todo")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Todo deleted successfully"})
}
