package admin

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	Count(ctx context.Context) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, user User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

func (r *MongoRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	var out User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&out)
	if err != nil {
		return User{}, err
	}
	return out, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
