// Package state holds the client's single source of truth for the todo
// collection and its transient UI flags. All mutation goes through Store
// methods; readers get value copies via Snapshot, never live references.
package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/quadrant/core/internal/domain/entities"
)

// State is one immutable view of the store. Todos are ordered as
// fetched (newest first); updates replace entries in place and never
// reorder the list.
type State struct {
	Todos          []entities.Todo
	Loading        bool
	Error          string // empty means no error
	IsFormOpen     bool
	EditingTodo    *entities.Todo // todo currently being edited, nil when none
	DeletingTodoID uuid.UUID      // pending delete confirmation, uuid.Nil when none
}

// Store is the canonical task state container.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state. The returned slices and
// pointers are the caller's own; mutating them does not touch the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Todos = make([]entities.Todo, len(s.state.Todos))
	copy(snap.Todos, s.state.Todos)

	if s.state.EditingTodo != nil {
		editing := *s.state.EditingTodo
		snap.EditingTodo = &editing
	}

	return snap
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

// SetError sets the user-facing error message; empty clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = msg
}

// ReplaceAll replaces the entire collection, used after a fetch.
func (s *Store) ReplaceAll(todos []entities.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Todos = make([]entities.Todo, len(todos))
	copy(s.state.Todos, todos)
}

// InsertAtFront prepends a newly created todo.
func (s *Store) InsertAtFront(todo entities.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Todos = append([]entities.Todo{todo}, s.state.Todos...)
}

// ReplaceByID replaces the entry with a matching id in place, keeping
// its list position. An unknown id is a no-op; it must not append.
func (s *Store) ReplaceByID(todo entities.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Todos {
		if s.state.Todos[i].ID == todo.ID {
			s.state.Todos[i] = todo
			return
		}
	}
}

// RemoveByID filters the entry out; no-op if absent.
func (s *Store) RemoveByID(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.state.Todos[:0]
	for _, todo := range s.state.Todos {
		if todo.ID != id {
			todos = append(todos, todo)
		}
	}
	s.state.Todos = todos
}

// GetByID returns a copy of the entry with the given id.
func (s *Store) GetByID(id uuid.UUID) (entities.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, todo := range s.state.Todos {
		if todo.ID == id {
			return todo, true
		}
	}
	return entities.Todo{}, false
}

// SetFormOpen sets the create/edit form visibility flag.
func (s *Store) SetFormOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsFormOpen = open
}

// SetEditingTodo designates the todo being edited; nil clears it.
func (s *Store) SetEditingTodo(todo *entities.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if todo == nil {
		s.state.EditingTodo = nil
		return
	}
	editing := *todo
	s.state.EditingTodo = &editing
}

// SetDeletingTodoID designates a pending delete confirmation; uuid.Nil
// clears it.
func (s *Store) SetDeletingTodoID(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DeletingTodoID = id
}
