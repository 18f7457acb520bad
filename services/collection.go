// File: services/collection.go
package services

import (
	"context"
	"errors"
	"sync"

	"wanderlust/logger"
	"wanderlust/models"
	"wanderlust/repository"
)

// LoadState is where a collection sits in its idle → loading → ready/error lifecycle.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// Snapshot is a consistent copy of a collection for rendering.
type Snapshot[T models.Record] struct {
	Name  string    `json:"collection"`
	State LoadState `json:"state"`
	Error string    `json:"error,omitempty"`
	Items []T       `json:"items"`
}

// Collection is the in-memory copy of one backing collection.
//
// Fetches are ordered by issue: each Fetch takes a sequence number and its response is applied
// only if no newer Fetch was issued meanwhile. Mutations are confirmed: the backend is called
// first and the copy changes only when it succeeds. A mutation confirmed while a fetch is in
// flight is replayed on top of that fetch's records, since the listing may predate it.
// The mutex is never held across a backend call.
type Collection[T models.Record] struct {
	name    string
	backend repository.Repository[T]

	mu     sync.Mutex
	state  LoadState
	errMsg string
	items  []T
	seq    uint64
	closed bool

	// mutations confirmed while the latest fetch is in flight
	replay []func()
}

func NewCollection[T models.Record](name string, backend repository.Repository[T]) *Collection[T] {
	return &Collection[T]{name: name, backend: backend, state: StateIdle}
}

// Name returns the collection name used in messages and events.
func (c *Collection[T]) Name() string { return c.name }

// State returns the current lifecycle state.
func (c *Collection[T]) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Len returns the number of records currently held.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Snapshot returns a copy of the state, error banner and records.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{Name: c.name, State: c.state, Error: c.errMsg, Items: items}
}

// Fetch reloads the collection. A failed fetch keeps the previous records and moves to StateError.
// A response overtaken by a newer Fetch is dropped and Fetch returns nil.
func (c *Collection[T]) Fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrStoreClosed
	}
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.replay = nil
	c.mu.Unlock()

	items, err := c.backend.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		logger.Debug.Printf("[Collection.Fetch] %s: store closed, dropping response #%d", c.name, seq)
		return ErrStoreClosed
	}
	if seq != c.seq {
		logger.Debug.Printf("[Collection.Fetch] %s: response #%d superseded by #%d", c.name, seq, c.seq)
		return nil
	}
	replay := c.replay
	c.replay = nil
	if err != nil {
		c.state = StateError
		c.errMsg = "Failed to load " + c.name + ". Please try again."
		logger.Error.Printf("[Collection.Fetch] %s: %v", c.name, err)
		return &TransportError{Op: "fetch " + c.name, Err: err}
	}

	c.items = items
	for _, mutate := range replay {
		mutate()
	}
	c.state = StateReady
	c.errMsg = ""
	return nil
}

// Create stores record and appends it to the copy.
func (c *Collection[T]) Create(ctx context.Context, record T) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.backend.Create(ctx, record); err != nil {
		return c.fail("create", record.GetID(), err)
	}
	return c.apply(func() {
		for i := range c.items {
			if c.items[i].GetID() == record.GetID() {
				c.items[i] = record
				return
			}
		}
		c.items = append(c.items, record)
	})
}

// Update loads the record (from the copy, or the backend if it is not held), applies patch and
// stores the result. Concurrent admins editing the same record: the last write wins.
func (c *Collection[T]) Update(ctx context.Context, id string, patch func(*T) error) (T, error) {
	var zero T
	if err := c.checkOpen(); err != nil {
		return zero, err
	}

	current, ok := c.lookup(id)
	if !ok {
		var err error
		if current, err = c.backend.Get(ctx, id); err != nil {
			return zero, c.fail("update", id, err)
		}
	}

	if err := patch(&current); err != nil {
		return zero, err
	}
	if err := c.backend.Update(ctx, current); err != nil {
		return zero, c.fail("update", id, err)
	}

	err := c.apply(func() {
		for i := range c.items {
			if c.items[i].GetID() == id {
				c.items[i] = current
				return
			}
		}
	})
	return current, err
}

// Delete removes the record from the backend and then from the copy.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.backend.Delete(ctx, id); err != nil {
		return c.fail("delete", id, err)
	}
	return c.apply(func() {
		for i := range c.items {
			if c.items[i].GetID() == id {
				c.items = append(c.items[:i:i], c.items[i+1:]...)
				return
			}
		}
	})
}

// Close detaches the collection; results arriving later are not applied.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Collection[T]) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrStoreClosed
	}
	return nil
}

func (c *Collection[T]) lookup(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// apply mutates the copy unless the collection was closed while the backend call ran.
// mutate must be idempotent: it may run again over a fetched listing that already holds it.
func (c *Collection[T]) apply(mutate func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrStoreClosed
	}
	mutate()
	if c.state == StateLoading {
		c.replay = append(c.replay, mutate)
	}
	c.errMsg = ""
	return nil
}

// fail converts a backend error and records the banner message. Records are left untouched.
func (c *Collection[T]) fail(op, id string, err error) error {
	var out error
	switch {
	case errors.Is(err, repository.ErrNotFound):
		out = &NotFoundError{Collection: c.name, ID: id}
	case errors.Is(err, repository.ErrAlreadyExists):
		out = &ConflictError{Collection: c.name, Message: "a record with the same key already exists"}
	default:
		out = &TransportError{Op: op + " " + c.name, Err: err}
		logger.Error.Printf("[Collection.%s] %s %s: %v", op, c.name, id, err)
	}

	c.mu.Lock()
	c.errMsg = out.Error()
	c.mu.Unlock()
	return out
}
