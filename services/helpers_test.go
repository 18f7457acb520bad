// file: services/helpers_test.go
package services

import (
	"context"
	"errors"
	"sync"

	"wanderlust/models"
	"wanderlust/repository"
)

var errBackendDown = errors.New("connection refused")

// flakyRepo wraps a memory repository and fails every call while down is set.
type flakyRepo[T models.Record] struct {
	*repository.MemoryRepository[T]
	mu   sync.Mutex
	down bool
}

func newFlakyRepo[T models.Record]() *flakyRepo[T] {
	return &flakyRepo[T]{MemoryRepository: repository.NewMemoryRepository[T](nil)}
}

func (r *flakyRepo[T]) setDown(down bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.down = down
}

func (r *flakyRepo[T]) isDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.down
}

func (r *flakyRepo[T]) List(ctx context.Context) ([]T, error) {
	if r.isDown() {
		return nil, errBackendDown
	}
	return r.MemoryRepository.List(ctx)
}

func (r *flakyRepo[T]) Create(ctx context.Context, rec T) error {
	if r.isDown() {
		return errBackendDown
	}
	return r.MemoryRepository.Create(ctx, rec)
}

func (r *flakyRepo[T]) Update(ctx context.Context, rec T) error {
	if r.isDown() {
		return errBackendDown
	}
	return r.MemoryRepository.Update(ctx, rec)
}

func (r *flakyRepo[T]) Delete(ctx context.Context, id string) error {
	if r.isDown() {
		return errBackendDown
	}
	return r.MemoryRepository.Delete(ctx, id)
}

// listResult is one scripted answer to a gated List call.
type listResult[T models.Record] struct {
	items []T
	err   error
}

// gatedRepo blocks every List call until the test releases it, so responses can be delivered
// out of order. started receives the call index once a call is waiting.
type gatedRepo[T models.Record] struct {
	repository.Repository[T]
	mu      sync.Mutex
	gates   []chan listResult[T]
	started chan int
}

func newGatedRepo[T models.Record]() *gatedRepo[T] {
	return &gatedRepo[T]{
		Repository: repository.NewMemoryRepository[T](nil),
		started:    make(chan int, 8),
	}
}

func (r *gatedRepo[T]) List(ctx context.Context) ([]T, error) {
	gate := make(chan listResult[T], 1)
	r.mu.Lock()
	r.gates = append(r.gates, gate)
	idx := len(r.gates) - 1
	r.mu.Unlock()

	r.started <- idx
	res := <-gate
	return res.items, res.err
}

func (r *gatedRepo[T]) release(idx int, items []T, err error) {
	r.mu.Lock()
	gate := r.gates[idx]
	r.mu.Unlock()
	gate <- listResult[T]{items: items, err: err}
}

// seededManager returns an in-memory manager holding the given destinations.
func seededManager(ctx context.Context, destinations ...models.Destination) *repository.InMemoryManager {
	m := repository.NewInMemoryManager()
	for _, d := range destinations {
		if err := m.Destinations().Create(ctx, d); err != nil {
			panic(err)
		}
	}
	return m
}
