package courses

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Course) error
	Update(ctx context.Context, id string, set bson.M) (Course, error)
	Delete(ctx context.Context, id string) (Course, error)
	GetByID(ctx context.Context, id string) (Course, error)
	GetBySlug(ctx context.Context, slug string) (Course, error)
	List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Course, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Course) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Course, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Course
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Course{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (Course, error) {
	var deleted Course
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return Course{}, err
	}
	return deleted, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Course, error) {
	var item Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Course{}, err
	}
	return item, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Course, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"slug_en": slug},
		bson.M{"slug_ar": slug},
	}}

	var item Course
	if err := r.col.FindOne(ctx, query).Decode(&item); err != nil {
		return Course{}, err
	}
	return item, nil
}

func buildQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	return query
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Course, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Course, 0)
	for cursor.Next(ctx) {
		var item Course
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, buildQuery(filter))
}
