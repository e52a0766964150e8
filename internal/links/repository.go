package links

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonID pins the document so repeated upserts never grow the collection.
const singletonID = "general"

type Repository interface {
	Get(ctx context.Context) (GeneralLinks, error)
	Upsert(ctx context.Context, item GeneralLinks) (GeneralLinks, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Get(ctx context.Context) (GeneralLinks, error) {
	var out GeneralLinks
	err := r.col.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GeneralLinks{}, nil
		}
		return GeneralLinks{}, err
	}
	return out, nil
}

func (r *MongoRepository) Upsert(ctx context.Context, item GeneralLinks) (GeneralLinks, error) {
	item.ID = singletonID
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out GeneralLinks
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": singletonID}, bson.M{"$set": item}, opts).Decode(&out)
	if err != nil {
		return GeneralLinks{}, err
	}
	return out, nil
}
