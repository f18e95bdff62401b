package product

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "products"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the text index used by search plus the lookup
// indexes. Safe to call on every start.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "brand", Value: "text"},
			},
			Options: options.Index().SetName("product_text"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "isActive", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

// InsertMany is used by the seed command only.
func (r *MongoRepository) InsertMany(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]any, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}

func (r *MongoRepository) Find(ctx context.Context, q Query) ([]Product, error) {
	opts := options.Find().SetSort(mongoSort(q.Sort))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := r.coll.Find(ctx, mongoFilter(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("products.Find: %w", err)
	}

	out := []Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products cursor: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) Count(ctx context.Context, f Filter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, mongoFilter(f))
	if err != nil {
		return 0, fmt.Errorf("products.CountDocuments: %w", err)
	}
	return n, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}, {Key: "isActive", Value: true}})
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Product, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "isActive", Value: true}})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D) (Product, error) {
	var p Product
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("products.FindOne: %w", err)
	}
	return p, nil
}

func mongoFilter(f Filter) bson.D {
	filter := bson.D{{Key: "isActive", Value: true}}

	if f.CategoryID != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.CategoryID})
	}
	if f.Brand != "" {
		filter = append(filter, bson.E{Key: "brand", Value: f.Brand})
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.D{}
		if f.MinPrice != nil {
			price = append(price, bson.E{Key: "$gte", Value: *f.MinPrice})
		}
		if f.MaxPrice != nil {
			price = append(price, bson.E{Key: "$lte", Value: *f.MaxPrice})
		}
		filter = append(filter, bson.E{Key: "price", Value: price})
	}
	if f.Search != "" {
		filter = append(filter, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: f.Search}}})
	}
	if f.FeaturedOnly {
		filter = append(filter, bson.E{Key: "isFeatured", Value: true})
	}
	return filter
}

func mongoSort(s SortSpec) bson.D {
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: s.Field, Value: dir}, {Key: "_id", Value: 1}}
}
