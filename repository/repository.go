// Package repository is the backing service behind the admin and public data: a document store
// reached through the MongoDB driver, or an in-memory stand-in with the same contract.
package repository

import (
	"context"
	"errors"
	"time"

	"wanderlust/models"
)

var (
	// ErrNotFound is returned when no record has the requested id or key.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a record would break a uniqueness rule.
	ErrAlreadyExists = errors.New("already exists")
)

// Repository stores one collection of records. List returns records in insertion order.
// Update replaces the whole record identified by its id.
type Repository[T models.Record] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) error
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
}

// UserRepository adds lookup by the unique username.
type UserRepository interface {
	Repository[models.User]
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// DestinationRepository adds an append of one review that cannot lose concurrent appends.
// AppendReview returns the destination after the review is stored and the rating recomputed.
type DestinationRepository interface {
	Repository[models.Destination]
	AppendReview(ctx context.Context, id string, review models.Review, at time.Time) (models.Destination, error)
}

// Manager hands out the repositories of one backing store.
type Manager interface {
	Destinations() DestinationRepository
	Users() UserRepository
	Bookings() Repository[models.Booking]
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
