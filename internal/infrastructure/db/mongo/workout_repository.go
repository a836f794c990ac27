package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

const collectionWorkouts = "workouts"

// WorkoutRepository persists workouts. Workouts reach their owner through
// the client, so scoped queries join through the clients collection with
// $lookup instead of trusting any owner field on the workout document.
type WorkoutRepository struct {
	col *mongo.Collection
}

func NewWorkoutRepository(db *mongo.Database) *WorkoutRepository {
	return &WorkoutRepository{col: db.Collection(collectionWorkouts)}
}

// ownershipPipeline builds an aggregation that matches workouts against
// match and, when ownerID is non-empty, keeps only those whose client
// belongs to ownerID. The join and the tenant predicate run inside the same
// query.
func ownershipPipeline(match bson.M, ownerID string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
	}
	if ownerID != "" {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         collectionClients,
				"localField":   "client_id",
				"foreignField": "_id",
				"as":           "owner_chain",
			}}},
			bson.D{{Key: "$match", Value: bson.M{"owner_chain.user_id": ownerID}}},
			bson.D{{Key: "$project", Value: bson.M{"owner_chain": 0}}},
		)
	}
	return pipeline
}

// Create inserts the workout with its embedded exercises as one document,
// so a partial write can never leave orphaned exercises behind.
func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if workout.ID == "" {
		workout.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, workout); err != nil {
		return nil, storeErr("insert workout", err)
	}
	return workout, nil
}

func (r *WorkoutRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Workout, error) {
	workouts, err := r.aggregate(ctx, ownershipPipeline(bson.M{"_id": id}, ownerID))
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, domain.ErrWorkoutNotFound
	}
	return workouts[0], nil
}

func (r *WorkoutRepository) ListByClient(ctx context.Context, clientID, ownerID string) ([]*domain.Workout, error) {
	pipeline := ownershipPipeline(bson.M{"client_id": clientID}, ownerID)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.M{"date": -1}}})
	return r.aggregate(ctx, pipeline)
}

// Update re-resolves the workout under the tenant filter, then replaces the
// document. A scoping miss surfaces as NotFound before any write happens.
func (r *WorkoutRepository) Update(ctx context.Context, workout *domain.Workout, ownerID string) (*domain.Workout, error) {
	if _, err := r.FindByID(ctx, workout.ID, ownerID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": workout.ID}, workout)
	if err != nil {
		return nil, storeErr("update workout", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrWorkoutNotFound
	}
	return workout, nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := r.FindByID(ctx, id, ownerID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete workout", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

func (r *WorkoutRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("aggregate workouts", err)
	}
	defer cursor.Close(ctx)

	var workouts []*domain.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, storeErr("decode workouts", err)
	}
	return workouts, nil
}

// EnsureIndexes creates the parent-chain index used by the ownership join.
func (r *WorkoutRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
