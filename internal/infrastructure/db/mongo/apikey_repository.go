package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

const collectionAPIKeys = "api_keys"

// APIKeyRepository persists API keys. Keys own their tenant id directly, so
// scoping is a plain user_id equality predicate.
type APIKeyRepository struct {
	col *mongo.Collection
}

func NewAPIKeyRepository(db *mongo.Database) *APIKeyRepository {
	return &APIKeyRepository{col: db.Collection(collectionAPIKeys)}
}

func (r *APIKeyRepository) Insert(ctx context.Context, key *domain.APIKey) (*domain.APIKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if key.ID == "" {
		key.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, key); err != nil {
		return nil, storeErr("insert api key", err)
	}
	return key, nil
}

func (r *APIKeyRepository) FindByValue(ctx context.Context, value string) (*domain.APIKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var key domain.APIKey
	if err := r.col.FindOne(ctx, bson.M{"value": value}).Decode(&key); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, storeErr("find api key", err)
	}
	return &key, nil
}

func (r *APIKeyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.APIKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return nil, storeErr("list api keys", err)
	}
	defer cursor.Close(ctx)

	var keys []*domain.APIKey
	if err := cursor.All(ctx, &keys); err != nil {
		return nil, storeErr("decode api keys", err)
	}
	return keys, nil
}

// Delete removes the key only when owned by ownerID. A zero-row match —
// absent key or another tenant's key — reports NotFound either way.
func (r *APIKeyRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return storeErr("delete api key", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAPIKeyNotFound
	}
	return nil
}

func (r *APIKeyRepository) UpdateLastUsed(ctx context.Context, id string, usedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_used_at": usedAt}},
	)
	return err
}

// EnsureIndexes creates the unique key-value index and the owner index.
func (r *APIKeyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "value", Value: 1}}, Options: indexUnique()},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
