package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

const collectionClients = "clients"

// ClientRepository persists coached clients. Clients own their tenant id
// directly; when ownerID is non-empty every query carries a user_id equality
// predicate as part of the same filter, never as a post-fetch check.
type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

// scopedFilter returns the base filter with the tenant predicate applied.
// Empty ownerID is the admin bypass: no predicate is added.
func scopedFilter(base bson.M, ownerID string) bson.M {
	if ownerID != "" {
		base["user_id"] = ownerID
	}
	return base
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if client.ID == "" {
		client.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, client); err != nil {
		return nil, storeErr("insert client", err)
	}
	return client, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var client domain.Client
	err := r.col.FindOne(ctx, scopedFilter(bson.M{"_id": id}, ownerID)).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, storeErr("find client", err)
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, scopedFilter(bson.M{}, ownerID), opts)
	if err != nil {
		return nil, storeErr("list clients", err)
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, storeErr("decode clients", err)
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client, ownerID string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, scopedFilter(bson.M{"_id": client.ID}, ownerID), client)
	if err != nil {
		return nil, storeErr("update client", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

// Delete removes the client and cascades to its workouts.
func (r *ClientRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, scopedFilter(bson.M{"_id": id}, ownerID))
	if err != nil {
		return storeErr("delete client", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}

	// Cascade: orphaned workouts are unreachable through the ownership join
	// and would only accumulate.
	if _, err := r.col.Database().Collection(collectionWorkouts).DeleteMany(ctx, bson.M{"client_id": id}); err != nil {
		return storeErr("cascade delete workouts", err)
	}
	return nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
