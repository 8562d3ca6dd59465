package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrant/core/internal/client/api"
	"github.com/quadrant/core/internal/client/state"
	"github.com/quadrant/core/internal/domain/entities"
	"github.com/quadrant/core/internal/infrastructure/logger"
)

// fakeAPI lets each test script the remote behavior per method.
type fakeAPI struct {
	fetchAll func(ctx context.Context) ([]entities.Todo, error)
	create   func(ctx context.Context, req api.CreateRequest) (*entities.Todo, error)
	update   func(ctx context.Context, id uuid.UUID, patch api.TodoPatch) error
	remove   func(ctx context.Context, id uuid.UUID) error
	toggle   func(ctx context.Context, id uuid.UUID, completed bool) error
}

func (f *fakeAPI) FetchAll(ctx context.Context) ([]entities.Todo, error) {
	return f.fetchAll(ctx)
}

func (f *fakeAPI) Create(ctx context.Context, req api.CreateRequest) (*entities.Todo, error) {
	return f.create(ctx, req)
}

func (f *fakeAPI) Update(ctx context.Context, id uuid.UUID, patch api.TodoPatch) error {
	return f.update(ctx, id, patch)
}

func (f *fakeAPI) Remove(ctx context.Context, id uuid.UUID) error {
	return f.remove(ctx, id)
}

func (f *fakeAPI) ToggleComplete(ctx context.Context, id uuid.UUID, completed bool) error {
	return f.toggle(ctx, id, completed)
}

func newDispatcher(fake *fakeAPI) (*Dispatcher, *state.Store) {
	store := state.NewStore()
	return New(fake, store, logger.NewNop()), store
}

func makeTodo(title string, priority entities.Priority) entities.Todo {
	return entities.Todo{
		ID:       uuid.New(),
		Title:    title,
		Priority: priority,
	}
}

func TestFetchReplacesCollection(t *testing.T) {
	remote := []entities.Todo{makeTodo("a", entities.PriorityHigh), makeTodo("b", entities.PriorityLow)}
	fake := &fakeAPI{
		fetchAll: func(ctx context.Context) ([]entities.Todo, error) {
			return remote, nil
		},
	}
	d, store := newDispatcher(fake)
	store.SetError("Failed to fetch todos")

	d.Fetch(context.Background())
	d.Wait()

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 2)
	assert.Equal(t, remote[0].ID, snap.Todos[0].ID)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error, "a successful intent clears the previous error")
}

func TestFetchFailureSetsGenericMessage(t *testing.T) {
	fake := &fakeAPI{
		fetchAll: func(ctx context.Context) ([]entities.Todo, error) {
			return nil, errors.New("connection refused: 10.0.0.1")
		},
	}
	d, store := newDispatcher(fake)

	d.Fetch(context.Background())
	d.Wait()

	snap := store.Snapshot()
	assert.Equal(t, "Failed to fetch todos", snap.Error, "raw error detail must not leak into the store")
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Todos)
}

func TestCreateInsertsAtFrontAndClosesForm(t *testing.T) {
	existing := makeTodo("existing", entities.PriorityMedium)
	created := makeTodo("Buy milk", entities.PriorityMedium)

	fake := &fakeAPI{
		create: func(ctx context.Context, req api.CreateRequest) (*entities.Todo, error) {
			assert.Equal(t, "Buy milk", req.Title)
			result := created
			return &result, nil
		},
	}
	d, store := newDispatcher(fake)
	store.ReplaceAll([]entities.Todo{existing})
	store.SetFormOpen(true)

	d.Create(context.Background(), api.CreateRequest{Title: "Buy milk", Priority: entities.PriorityMedium})
	d.Wait()

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 2)
	assert.Equal(t, created.ID, snap.Todos[0].ID)
	assert.Equal(t, existing.ID, snap.Todos[1].ID)
	assert.False(t, snap.IsFormOpen)
	assert.Empty(t, snap.Error)
}

func TestUpdateMergesPatchInPlace(t *testing.T) {
	target := makeTodo("write report", entities.PriorityMedium)
	target.Description = "quarterly numbers"
	other := makeTodo("other", entities.PriorityLow)

	fake := &fakeAPI{
		update: func(ctx context.Context, id uuid.UUID, patch api.TodoPatch) error {
			assert.Equal(t, target.ID, id)
			return nil
		},
	}
	d, store := newDispatcher(fake)
	store.ReplaceAll([]entities.Todo{other, target})
	store.SetEditingTodo(&target)

	title := "write annual report"
	d.Update(context.Background(), target.ID, api.TodoPatch{Title: &title})
	d.Wait()

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 2)
	assert.Equal(t, other.ID, snap.Todos[0].ID, "update must not reorder the list")
	assert.Equal(t, "write annual report", snap.Todos[1].Title)
	assert.Equal(t, "quarterly numbers", snap.Todos[1].Description, "unsent fields survive the merge")
	assert.Equal(t, entities.PriorityMedium, snap.Todos[1].Priority)
	assert.Nil(t, snap.EditingTodo)
}

func TestDeleteRemovesEntry(t *testing.T) {
	target := makeTodo("doomed", entities.PriorityLow)

	fake := &fakeAPI{
		remove: func(ctx context.Context, id uuid.UUID) error {
			assert.Equal(t, target.ID, id)
			return nil
		},
	}
	d, store := newDispatcher(fake)
	store.ReplaceAll([]entities.Todo{target})
	store.SetDeletingTodoID(target.ID)

	d.Delete(context.Background(), target.ID)
	d.Wait()

	snap := store.Snapshot()
	assert.Empty(t, snap.Todos)
	assert.Equal(t, uuid.Nil, snap.DeletingTodoID)
}

func TestDeleteUnknownIDSurfacesError(t *testing.T) {
	kept := makeTodo("kept", entities.PriorityHigh)

	fake := &fakeAPI{
		remove: func(ctx context.Context, id uuid.UUID) error {
			return api.ErrNotFound
		},
	}
	d, store := newDispatcher(fake)
	store.ReplaceAll([]entities.Todo{kept})

	d.Delete(context.Background(), uuid.New())
	d.Wait()

	snap := store.Snapshot()
	assert.Equal(t, "Failed to delete todo", snap.Error)
	require.Len(t, snap.Todos, 1, "a failed delete must not touch the collection")
	assert.Equal(t, kept.ID, snap.Todos[0].ID)
}

func TestToggleMovesQuadrantWithoutReordering(t *testing.T) {
	first := makeTodo("t1", entities.PriorityMedium)
	second := makeTodo("t2", entities.PriorityHigh)

	fake := &fakeAPI{
		update: func(ctx context.Context, id uuid.UUID, patch api.TodoPatch) error {
			require.NotNil(t, patch.Completed)
			assert.True(t, *patch.Completed)
			assert.Nil(t, patch.Priority, "toggle must send only the completed flag")
			return nil
		},
	}
	d, store := newDispatcher(fake)
	store.ReplaceAll([]entities.Todo{first, second})

	d.Toggle(context.Background(), first.ID, true)
	d.Wait()

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 2)
	assert.Equal(t, first.ID, snap.Todos[0].ID, "list position is preserved")
	assert.True(t, snap.Todos[0].Completed)
	assert.Equal(t, entities.PriorityMedium, snap.Todos[0].Priority, "priority survives the toggle")
}

// TestFetchSupersession covers the take-latest policy: when a second
// fetch is issued while the first is in flight, only the second may
// touch the store, even if the first resolves after it.
func TestFetchSupersession(t *testing.T) {
	staleResult := []entities.Todo{makeTodo("stale", entities.PriorityLow)}
	freshResult := []entities.Todo{makeTodo("fresh", entities.PriorityHigh)}

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0

	fake := &fakeAPI{
		fetchAll: func(ctx context.Context) ([]entities.Todo, error) {
			calls++
			if calls == 1 {
				close(firstStarted)
				<-releaseFirst
				return staleResult, nil
			}
			return freshResult, nil
		},
	}
	d, store := newDispatcher(fake)

	d.Fetch(context.Background())
	<-firstStarted

	d.Fetch(context.Background())

	// Let the first request resolve only after the second was issued.
	close(releaseFirst)
	d.Wait()

	snap := store.Snapshot()
	require.Len(t, snap.Todos, 1)
	assert.Equal(t, "fresh", snap.Todos[0].Title, "the superseded result must be discarded")
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

// A superseded request that fails must not surface its error either:
// the whole effect is dropped, not just the data fold.
func TestSupersededFailureIsDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0

	fake := &fakeAPI{
		fetchAll: func(ctx context.Context) ([]entities.Todo, error) {
			calls++
			if calls == 1 {
				close(firstStarted)
				<-releaseFirst
				return nil, errors.New("timeout")
			}
			return []entities.Todo{makeTodo("ok", entities.PriorityMedium)}, nil
		},
	}
	d, store := newDispatcher(fake)

	d.Fetch(context.Background())
	<-firstStarted
	d.Fetch(context.Background())
	close(releaseFirst)
	d.Wait()

	snap := store.Snapshot()
	assert.Empty(t, snap.Error, "the stale failure must not be reported")
	require.Len(t, snap.Todos, 1)
	assert.Equal(t, "ok", snap.Todos[0].Title)
}

// Different intent kinds never supersede each other.
func TestDistinctIntentKindsRunIndependently(t *testing.T) {
	created := makeTodo("new", entities.PriorityMedium)

	fetchStarted := make(chan struct{})
	releaseFetch := make(chan struct{})

	fake := &fakeAPI{
		fetchAll: func(ctx context.Context) ([]entities.Todo, error) {
			close(fetchStarted)
			<-releaseFetch
			return nil, nil
		},
		create: func(ctx context.Context, req api.CreateRequest) (*entities.Todo, error) {
			result := created
			return &result, nil
		},
	}
	d, store := newDispatcher(fake)

	d.Fetch(context.Background())
	<-fetchStarted

	// A create issued mid-fetch must not cancel the fetch effect.
	d.Create(context.Background(), api.CreateRequest{Title: "new"})
	close(releaseFetch)
	d.Wait()

	// Both effects landed: the fetch cleared the collection (it returned
	// nothing) or the create prepended, depending on resolution order.
	// Either way neither was discarded as superseded, so no error and
	// loading is settled.
	snap := store.Snapshot()
	assert.Empty(t, snap.Error)
	assert.False(t, snap.Loading)
}

// There is no dispatcher-side timeout: an op that ignores its context
// and never returns leaves Loading stuck true. Wait would block
// forever, so this test observes the flag without Wait. Callers are
// expected to bound calls via ctx.
func TestHungCallLeavesLoadingTrue(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	fake := &fakeAPI{
		fetchAll: func(ctx context.Context) ([]entities.Todo, error) {
			close(started)
			<-release
			return nil, nil
		},
	}
	d, store := newDispatcher(fake)

	d.Fetch(context.Background())
	<-started

	assert.True(t, store.Snapshot().Loading)
}
