package state

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrant/core/internal/domain/entities"
)

func makeTodo(title string) entities.Todo {
	return entities.Todo{
		ID:       uuid.New(),
		Title:    title,
		Priority: entities.PriorityMedium,
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.ReplaceAll([]entities.Todo{makeTodo("one"), makeTodo("two")})

	snap := store.Snapshot()
	snap.Todos[0].Title = "mutated"
	snap.Todos = append(snap.Todos, makeTodo("extra"))

	fresh := store.Snapshot()
	require.Len(t, fresh.Todos, 2)
	assert.Equal(t, "one", fresh.Todos[0].Title)
}

func TestSnapshotCopiesEditingTodo(t *testing.T) {
	store := NewStore()
	editing := makeTodo("editing")
	store.SetEditingTodo(&editing)

	snap := store.Snapshot()
	require.NotNil(t, snap.EditingTodo)
	snap.EditingTodo.Title = "mutated"

	assert.Equal(t, "editing", store.Snapshot().EditingTodo.Title)
}

func TestReplaceByIDKeepsPosition(t *testing.T) {
	store := NewStore()
	a, b, c := makeTodo("a"), makeTodo("b"), makeTodo("c")
	store.ReplaceAll([]entities.Todo{a, b, c})

	updated := b
	updated.Title = "b2"
	updated.Completed = true
	store.ReplaceByID(updated)

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 3)
	assert.Equal(t, a.ID, snap.Todos[0].ID)
	assert.Equal(t, b.ID, snap.Todos[1].ID)
	assert.Equal(t, "b2", snap.Todos[1].Title)
	assert.True(t, snap.Todos[1].Completed)
	assert.Equal(t, c.ID, snap.Todos[2].ID)
}

func TestReplaceByIDUnknownIDDoesNotAppend(t *testing.T) {
	store := NewStore()
	store.ReplaceAll([]entities.Todo{makeTodo("a")})

	store.ReplaceByID(makeTodo("stranger"))

	assert.Len(t, store.Snapshot().Todos, 1)
}

func TestInsertAtFront(t *testing.T) {
	store := NewStore()
	old := makeTodo("old")
	store.ReplaceAll([]entities.Todo{old})

	fresh := makeTodo("fresh")
	store.InsertAtFront(fresh)

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 2)
	assert.Equal(t, fresh.ID, snap.Todos[0].ID)
	assert.Equal(t, old.ID, snap.Todos[1].ID)
}

func TestRemoveByID(t *testing.T) {
	store := NewStore()
	a, b := makeTodo("a"), makeTodo("b")
	store.ReplaceAll([]entities.Todo{a, b})

	store.RemoveByID(a.ID)

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 1)
	assert.Equal(t, b.ID, snap.Todos[0].ID)

	// Removing an absent id is a no-op.
	store.RemoveByID(a.ID)
	assert.Len(t, store.Snapshot().Todos, 1)
}

func TestGetByID(t *testing.T) {
	store := NewStore()
	a := makeTodo("a")
	store.ReplaceAll([]entities.Todo{a})

	got, ok := store.GetByID(a.ID)
	require.True(t, ok)
	assert.Equal(t, "a", got.Title)

	_, ok = store.GetByID(uuid.New())
	assert.False(t, ok)
}

func TestErrorAndLoadingFlags(t *testing.T) {
	store := NewStore()

	store.SetLoading(true)
	store.SetError("Failed to fetch todos")

	snap := store.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, "Failed to fetch todos", snap.Error)

	store.SetLoading(false)
	store.SetError("")

	snap = store.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

func TestUIFlags(t *testing.T) {
	store := NewStore()

	store.SetFormOpen(true)
	assert.True(t, store.Snapshot().IsFormOpen)

	id := uuid.New()
	store.SetDeletingTodoID(id)
	assert.Equal(t, id, store.Snapshot().DeletingTodoID)

	store.SetDeletingTodoID(uuid.Nil)
	assert.Equal(t, uuid.Nil, store.Snapshot().DeletingTodoID)

	store.SetEditingTodo(nil)
	assert.Nil(t, store.Snapshot().EditingTodo)
}
