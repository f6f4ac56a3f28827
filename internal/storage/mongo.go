package storage

import (
	"context"
	"fmt"

	"github.com/car-assistant/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB wraps the client connection to the remote profile store
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoDB creates a new connection to the profile document store
func NewMongoDB(cfg *config.MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to profile store: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("unable to ping profile store: %w", err)
	}

	return &MongoDB{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// Close disconnects from the profile store
func (db *MongoDB) Close(ctx context.Context) error {
	if db.client != nil {
		return db.client.Disconnect(ctx)
	}
	return nil
}

// Collection returns a handle to the named collection
func (db *MongoDB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Ping checks if the profile store is reachable
func (db *MongoDB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}
