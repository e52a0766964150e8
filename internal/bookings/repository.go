package bookings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Booking) error
	MarkViewed(ctx context.Context, id string) (Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Booking) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) MarkViewed(ctx context.Context, id string) (Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Booking
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"viewed": true}}, opts).Decode(&updated)
	if err != nil {
		return Booking{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func buildQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Viewed != nil {
		query["viewed"] = *filter.Viewed
	}
	return query
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Booking, 0)
	for cursor.Next(ctx) {
		var item Booking
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
