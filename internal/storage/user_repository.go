package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/car-assistant/internal/models"
	"github.com/car-assistant/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserRepository handles user profile persistence in the remote document
// store. Each operation issues exactly one remote call and holds no state
// between calls; the store itself arbitrates concurrent writers.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user profile repository
func NewUserRepository(db *MongoDB) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

// GetByID retrieves a user profile by ID. A profile that does not exist is
// not an error: callers receive (nil, nil) and decide what absence means.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	return &user, nil
}

// Save writes the full profile document, creating it when absent. The
// profile must carry its own ID.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: "user profile requires an id",
		}
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}

	return nil
}

// SetOnlineStatus updates the online flag for a user and stamps last_seen
// with the current time in epoch milliseconds. Only those two fields are
// touched.
func (r *UserRepository) SetOnlineStatus(ctx context.Context, id string, online bool) error {
	update := bson.M{"$set": bson.M{
		"is_online": online,
		"last_seen": time.Now().UnixMilli(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update online status for user %s: %w", id, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

// SetPushToken stores the notification token for a user. Only the token
// field is touched.
func (r *UserRepository) SetPushToken(ctx context.Context, id string, token string) error {
	update := bson.M{"$set": bson.M{
		"push_token": token,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update push token for user %s: %w", id, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}
