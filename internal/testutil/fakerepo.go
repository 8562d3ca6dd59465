// Package testutil provides in-memory repository fakes for service and
// handler tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/quadrant/core/internal/domain/entities"
)

// FakeTodoRepo is an in-memory ports.TodoRepository.
type FakeTodoRepo struct {
	mu    sync.Mutex
	todos map[uuid.UUID]entities.Todo

	// CreateErr, when set, is returned by Create.
	CreateErr error
}

// NewFakeTodoRepo creates an empty fake todo repository.
func NewFakeTodoRepo() *FakeTodoRepo {
	return &FakeTodoRepo{todos: make(map[uuid.UUID]entities.Todo)}
}

func (f *FakeTodoRepo) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	created := *todo
	created.ID = uuid.New()
	f.todos[created.ID] = created

	result := created
	return &result, nil
}

func (f *FakeTodoRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	todo, ok := f.todos[id]
	if !ok || todo.UserID != userID {
		return nil, entities.ErrTodoNotFound
	}

	result := todo
	return &result, nil
}

func (f *FakeTodoRepo) Update(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return nil, entities.ErrTodoNotFound
	}

	f.todos[todo.ID] = *todo
	result := *todo
	return &result, nil
}

func (f *FakeTodoRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	todo, ok := f.todos[id]
	if !ok || todo.UserID != userID {
		return entities.ErrTodoNotFound
	}

	delete(f.todos, id)
	return nil
}

func (f *FakeTodoRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var todos []*entities.Todo
	for _, todo := range f.todos {
		if todo.UserID == userID {
			t := todo
			todos = append(todos, &t)
		}
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})

	if len(todos) > limit {
		todos = todos[:limit]
	}

	return todos, nil
}

// FakeUserRepo is an in-memory ports.UserRepository.
type FakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entities.User
}

// NewFakeUserRepo creates an empty fake user repository.
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[uuid.UUID]entities.User)}
}

func (f *FakeUserRepo) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = *user
	result := *user
	return &result, nil
}

func (f *FakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}

	result := user
	return &result, nil
}

func (f *FakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			result := user
			return &result, nil
		}
	}

	return nil, entities.ErrUserNotFound
}
