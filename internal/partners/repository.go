package partners

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Partner) error
	Update(ctx context.Context, id string, set bson.M) (Partner, error)
	Delete(ctx context.Context, id string) (Partner, error)
	GetByID(ctx context.Context, id string) (Partner, error)
	List(ctx context.Context) ([]Partner, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Partner) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Partner, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Partner
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Partner{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (Partner, error) {
	var deleted Partner
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return Partner{}, err
	}
	return deleted, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Partner, error) {
	var item Partner
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Partner{}, err
	}
	return item, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Partner, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Partner, 0)
	for cursor.Next(ctx) {
		var item Partner
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
