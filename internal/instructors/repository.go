package instructors

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Instructor) error
	Update(ctx context.Context, id string, set bson.M) (Instructor, error)
	Delete(ctx context.Context, id string) (Instructor, error)
	GetByID(ctx context.Context, id string) (Instructor, error)
	List(ctx context.Context) ([]Instructor, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Instructor) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Instructor, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Instructor
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Instructor{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (Instructor, error) {
	var deleted Instructor
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return Instructor{}, err
	}
	return deleted, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Instructor, error) {
	var item Instructor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Instructor{}, err
	}
	return item, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Instructor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_en", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Instructor, 0)
	for cursor.Next(ctx) {
		var item Instructor
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

func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
