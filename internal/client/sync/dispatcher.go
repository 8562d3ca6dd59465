// Package sync orchestrates UI intents against the remote API and the
// state store. Each intent follows the same shape: set loading, perform
// the remote call, fold the result into the store on success or record a
// generic per-intent error message on failure, then clear loading.
//
// Repeated intents of the same kind supersede one another: only the most
// recently issued request of a kind may touch the store. A superseded
// request is not cancelled on the wire; its entire store effect,
// including loading and error bookkeeping, is simply discarded when it
// resolves. Intents of different kinds run concurrently and never cancel
// each other.
package sync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/quadrant/core/internal/client/api"
	"github.com/quadrant/core/internal/client/state"
	"github.com/quadrant/core/internal/domain/entities"
	"github.com/quadrant/core/internal/infrastructure/logger"
)

// API is the remote call surface the dispatcher drives. *api.Client
// satisfies it; tests substitute fakes.
type API interface {
	FetchAll(ctx context.Context) ([]entities.Todo, error)
	Create(ctx context.Context, req api.CreateRequest) (*entities.Todo, error)
	Update(ctx context.Context, id uuid.UUID, patch api.TodoPatch) error
	Remove(ctx context.Context, id uuid.UUID) error
	ToggleComplete(ctx context.Context, id uuid.UUID, completed bool) error
}

// Generic user-facing failure messages, one per intent kind. The
// underlying error never reaches the store; it goes to the logger.
const (
	msgFetchFailed  = "Failed to fetch todos"
	msgCreateFailed = "Failed to create todo"
	msgUpdateFailed = "Failed to update todo"
	msgDeleteFailed = "Failed to delete todo"
	msgToggleFailed = "Failed to toggle todo status"
)

type intentKind int

const (
	intentFetch intentKind = iota
	intentCreate
	intentUpdate
	intentDelete
	intentToggle
	numIntents
)

var intentNames = [numIntents]string{"fetch", "create", "update", "delete", "toggle"}

// Dispatcher runs the five todo intents asynchronously.
type Dispatcher struct {
	api    API
	store  *state.Store
	logger *logger.Logger

	wg   sync.WaitGroup
	gens [numIntents]atomic.Uint64
}

// New creates a dispatcher over the given API client and store.
func New(apiClient API, store *state.Store, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		api:    apiClient,
		store:  store,
		logger: logger,
	}
}

// Fetch reloads the caller's collection from the remote API.
func (d *Dispatcher) Fetch(ctx context.Context) {
	d.dispatch(ctx, intentFetch, msgFetchFailed, func(ctx context.Context) (func(), error) {
		todos, err := d.api.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		return func() {
			d.store.ReplaceAll(todos)
		}, nil
	})
}

// Create creates a todo and inserts the server-assigned record at the
// front of the collection.
func (d *Dispatcher) Create(ctx context.Context, req api.CreateRequest) {
	d.dispatch(ctx, intentCreate, msgCreateFailed, func(ctx context.Context) (func(), error) {
		created, err := d.api.Create(ctx, req)
		if err != nil {
			return nil, err
		}
		return func() {
			d.store.InsertAtFront(*created)
			d.store.SetFormOpen(false)
		}, nil
	})
}

// Update applies a partial update remotely, then folds only the sent
// fields (plus the id) into the store. The store's copy may lag
// server-computed fields such as updatedAt until the next fetch; this
// accepted staleness is deliberate, not a bug.
func (d *Dispatcher) Update(ctx context.Context, id uuid.UUID, patch api.TodoPatch) {
	d.dispatch(ctx, intentUpdate, msgUpdateFailed, func(ctx context.Context) (func(), error) {
		if err := d.api.Update(ctx, id, patch); err != nil {
			return nil, err
		}
		return func() {
			d.mergeIntoStore(id, patch)
			d.store.SetEditingTodo(nil)
		}, nil
	})
}

// Delete removes a todo remotely and drops it from the collection.
func (d *Dispatcher) Delete(ctx context.Context, id uuid.UUID) {
	d.dispatch(ctx, intentDelete, msgDeleteFailed, func(ctx context.Context) (func(), error) {
		if err := d.api.Remove(ctx, id); err != nil {
			return nil, err
		}
		return func() {
			d.store.RemoveByID(id)
			d.store.SetDeletingTodoID(uuid.Nil)
		}, nil
	})
}

// Toggle flips a todo's completed flag.
func (d *Dispatcher) Toggle(ctx context.Context, id uuid.UUID, completed bool) {
	d.dispatch(ctx, intentToggle, msgToggleFailed, func(ctx context.Context) (func(), error) {
		if err := d.api.ToggleComplete(ctx, id, completed); err != nil {
			return nil, err
		}
		return func() {
			d.mergeIntoStore(id, api.TodoPatch{Completed: &completed})
		}, nil
	})
}

// Wait blocks until every in-flight intent has resolved. Superseded
// intents count: they must land (and be discarded) before Wait returns.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// dispatch runs one intent asynchronously under the superseding policy.
// op performs the remote call and returns the store effect to apply on
// success; the effect runs only if this request is still the latest of
// its kind when it resolves.
//
// There is no timeout here: a hung call that outlives its context leaves
// loading stuck true. Callers control cancellation via ctx.
func (d *Dispatcher) dispatch(ctx context.Context, kind intentKind, failMsg string, op func(context.Context) (func(), error)) {
	seq := d.gens[kind].Add(1)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		if d.gens[kind].Load() != seq {
			// Superseded before starting; never touch the store.
			return
		}

		d.store.SetLoading(true)

		apply, err := op(ctx)

		if d.gens[kind].Load() != seq {
			d.logger.Debugw("Discarding superseded intent result",
				"intent", intentNames[kind],
				"seq", seq,
			)
			return
		}

		if err != nil {
			d.logger.Errorw("Intent failed",
				"intent", intentNames[kind],
				"error", err,
			)
			d.store.SetError(failMsg)
		} else {
			apply()
			d.store.SetError("")
		}

		d.store.SetLoading(false)
	}()
}

// mergeIntoStore folds a patch onto the stored entry with the given id,
// preserving its list position. Unknown ids are a no-op.
func (d *Dispatcher) mergeIntoStore(id uuid.UUID, patch api.TodoPatch) {
	existing, ok := d.store.GetByID(id)
	if !ok {
		return
	}

	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Priority != nil {
		existing.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		existing.DueDate = *patch.DueDate
	}
	if patch.Completed != nil {
		existing.Completed = *patch.Completed
	}
	existing.UpdatedAt = time.Now()

	d.store.ReplaceByID(existing)
}
