package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"wanderlust/logger"
	"wanderlust/models"
)

const (
	destinationsCollection = "destinations"
	usersCollection        = "users"
	bookingsCollection     = "bookings"
)

// MongoManager owns the client connection shared by the three repositories.
type MongoManager struct {
	client       *mongo.Client
	destinations *MongoDestinationRepository
	users        *MongoUserRepository
	bookings     *MongoRepository[models.Booking]
}

// NewMongoManager connects, pings and prepares indexes.
func NewMongoManager(ctx context.Context, uri, database string) (*MongoManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	db := client.Database(database)
	m := &MongoManager{
		client:       client,
		destinations: &MongoDestinationRepository{NewMongoRepository[models.Destination](db.Collection(destinationsCollection))},
		users:        &MongoUserRepository{NewMongoRepository[models.User](db.Collection(usersCollection))},
		bookings:     NewMongoRepository[models.Booking](db.Collection(bookingsCollection)),
	}

	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := m.users.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure user indexes: %w", err)
	}

	logger.Info.Printf("NewMongoManager: connected to database %q", database)
	return m, nil
}

func (m *MongoManager) Destinations() DestinationRepository  { return m.destinations }
func (m *MongoManager) Users() UserRepository                { return m.users }
func (m *MongoManager) Bookings() Repository[models.Booking] { return m.bookings }

func (m *MongoManager) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

func (m *MongoManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
