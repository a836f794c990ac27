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

const collectionTemplates = "workout_templates"

// TemplateRepository persists workout templates. Visibility is a
// disjunction: a template is in scope when it is a system template or its
// owner matches the tenant filter.
type TemplateRepository struct {
	col *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{col: db.Collection(collectionTemplates)}
}

// visibilityFilter adds the is_system-or-owner disjunction to base. Empty
// ownerID is the admin bypass.
func visibilityFilter(base bson.M, ownerID string) bson.M {
	if ownerID != "" {
		base["$or"] = bson.A{
			bson.M{"is_system": true},
			bson.M{"user_id": ownerID},
		}
	}
	return base
}

func (r *TemplateRepository) Create(ctx context.Context, tpl *domain.WorkoutTemplate) (*domain.WorkoutTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tpl.ID == "" {
		tpl.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, tpl); err != nil {
		return nil, storeErr("insert template", err)
	}
	return tpl, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.WorkoutTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var tpl domain.WorkoutTemplate
	err := r.col.FindOne(ctx, visibilityFilter(bson.M{"_id": id}, ownerID)).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, storeErr("find template", err)
	}
	return &tpl, nil
}

func (r *TemplateRepository) List(ctx context.Context, ownerID string) ([]*domain.WorkoutTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, visibilityFilter(bson.M{}, ownerID), opts)
	if err != nil {
		return nil, storeErr("list templates", err)
	}
	defer cursor.Close(ctx)

	var templates []*domain.WorkoutTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, storeErr("decode templates", err)
	}
	return templates, nil
}

// Update replaces the template under an ownership filter: unlike reads,
// writes never match system templates through the visibility disjunction.
func (r *TemplateRepository) Update(ctx context.Context, tpl *domain.WorkoutTemplate, ownerID string) (*domain.WorkoutTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": tpl.ID}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	res, err := r.col.ReplaceOne(ctx, filter, tpl)
	if err != nil {
		return nil, storeErr("update template", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTemplateNotFound
	}
	return tpl, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return storeErr("delete template", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the visibility disjunction.
func (r *TemplateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_system", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
