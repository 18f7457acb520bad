package repository

import (
	"context"
	"sync"
	"time"

	"wanderlust/models"
)

// MemoryRepository keeps records in a slice. It is safe for concurrent use.
type MemoryRepository[T models.Record] struct {
	mu        sync.RWMutex
	items     []T
	conflicts func(a, b T) bool
}

// NewMemoryRepository creates an empty repository. conflicts, when non-nil, reports whether two
// distinct records violate a uniqueness rule.
func NewMemoryRepository[T models.Record](conflicts func(a, b T) bool) *MemoryRepository[T] {
	return &MemoryRepository[T]{conflicts: conflicts}
}

func (r *MemoryRepository[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.items[i], nil
	}
	return zero, ErrNotFound
}

func (r *MemoryRepository[T]) Create(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(record.GetID()) >= 0 || r.conflictsWith(record) {
		return ErrAlreadyExists
	}
	r.items = append(r.items, record)
	return nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(record.GetID())
	if i < 0 {
		return ErrNotFound
	}
	if r.conflictsWith(record) {
		return ErrAlreadyExists
	}
	r.items[i] = record
	return nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.items = append(r.items[:i:i], r.items[i+1:]...)
	return nil
}

// find returns the first record matching pred.
func (r *MemoryRepository[T]) find(pred func(T) bool) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// indexOf must be called with the lock held.
func (r *MemoryRepository[T]) indexOf(id string) int {
	for i, item := range r.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}

// conflictsWith must be called with the lock held.
func (r *MemoryRepository[T]) conflictsWith(record T) bool {
	if r.conflicts == nil {
		return false
	}
	for _, item := range r.items {
		if item.GetID() != record.GetID() && r.conflicts(item, record) {
			return true
		}
	}
	return false
}

// MemoryUserRepository enforces unique usernames.
type MemoryUserRepository struct {
	*MemoryRepository[models.User]
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		MemoryRepository: NewMemoryRepository(func(a, b models.User) bool {
			return a.Username == b.Username
		}),
	}
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	if u, ok := r.find(func(u models.User) bool { return u.Username == username }); ok {
		return u, nil
	}
	return models.User{}, ErrNotFound
}

// MemoryDestinationRepository appends reviews under the repository lock.
type MemoryDestinationRepository struct {
	*MemoryRepository[models.Destination]
}

func NewMemoryDestinationRepository() *MemoryDestinationRepository {
	return &MemoryDestinationRepository{MemoryRepository: NewMemoryRepository[models.Destination](nil)}
}

func (r *MemoryDestinationRepository) AppendReview(ctx context.Context, id string, review models.Review, at time.Time) (models.Destination, error) {
	if err := ctx.Err(); err != nil {
		return models.Destination{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.Destination{}, ErrNotFound
	}
	d := r.items[i]
	reviews := make([]models.Review, 0, len(d.Reviews)+1)
	d.Reviews = append(append(reviews, d.Reviews...), review)
	d.Rating = d.AverageRating()
	d.UpdatedAt = at
	r.items[i] = d
	return d, nil
}

// InMemoryManager backs local development and tests.
type InMemoryManager struct {
	destinations *MemoryDestinationRepository
	users        *MemoryUserRepository
	bookings     *MemoryRepository[models.Booking]
}

func NewInMemoryManager() *InMemoryManager {
	return &InMemoryManager{
		destinations: NewMemoryDestinationRepository(),
		users:        NewMemoryUserRepository(),
		bookings:     NewMemoryRepository[models.Booking](nil),
	}
}

func (m *InMemoryManager) Destinations() DestinationRepository  { return m.destinations }
func (m *InMemoryManager) Users() UserRepository                { return m.users }
func (m *InMemoryManager) Bookings() Repository[models.Booking] { return m.bookings }
func (m *InMemoryManager) Ping(ctx context.Context) error       { return ctx.Err() }
func (m *InMemoryManager) Close(ctx context.Context) error      { return nil }
