package category

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "categories"

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

func (r *mongoRepository) ListActive(ctx context.Context) ([]Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{{Key: "isActive", Value: true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("categories.Find: %w", err)
	}

	out := []Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("categories cursor: %w", err)
	}
	return out, nil
}

func (r *mongoRepository) GetBySlug(ctx context.Context, slug string) (Category, error) {
	var c Category
	err := r.coll.FindOne(ctx, bson.D{
		{Key: "slug", Value: slug},
		{Key: "isActive", Value: true},
	}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("categories.FindOne: %w", err)
	}
	return c, nil
}

func (r *mongoRepository) GetByIDs(ctx context.Context, ids []string) ([]Category, error) {
	if len(ids) == 0 {
		return []Category{}, nil
	}

	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("categories.Find: %w", err)
	}

	out := []Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("categories cursor: %w", err)
	}
	return out, nil
}
