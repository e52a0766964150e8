package sitemedia

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HomeRepository interface {
	Insert(ctx context.Context, item HomeMediaItem) error
	Delete(ctx context.Context, id string) (HomeMediaItem, error)
	SetSortOrder(ctx context.Context, id string, sortOrder int) error
	List(ctx context.Context) ([]HomeMediaItem, error)
}

type CitiesRepository interface {
	Upsert(ctx context.Context, item CityMedia) (CityMedia, error)
	GetByCity(ctx context.Context, city string) (CityMedia, error)
	List(ctx context.Context) ([]CityMedia, error)
}

type MongoHomeRepository struct {
	col *mongo.Collection
}

func NewHomeRepository(col *mongo.Collection) *MongoHomeRepository {
	return &MongoHomeRepository{col: col}
}

func (r *MongoHomeRepository) Insert(ctx context.Context, item HomeMediaItem) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoHomeRepository) Delete(ctx context.Context, id string) (HomeMediaItem, error) {
	var deleted HomeMediaItem
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return HomeMediaItem{}, err
	}
	return deleted, nil
}

func (r *MongoHomeRepository) SetSortOrder(ctx context.Context, id string, sortOrder int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"sort_order": sortOrder}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoHomeRepository) List(ctx context.Context) ([]HomeMediaItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "created_at", Value: 1},
	})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]HomeMediaItem, 0)
	for cursor.Next(ctx) {
		var item HomeMediaItem
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

type MongoCitiesRepository struct {
	col *mongo.Collection
}

func NewCitiesRepository(col *mongo.Collection) *MongoCitiesRepository {
	return &MongoCitiesRepository{col: col}
}

func (r *MongoCitiesRepository) Upsert(ctx context.Context, item CityMedia) (CityMedia, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(true)

	set := bson.M{
		"media_url":     item.MediaURL,
		"public_id":     item.PublicID,
		"resource_type": item.ResourceType,
		"updated_at":    item.UpdatedAt,
	}

	var updated CityMedia
	err := r.col.FindOneAndUpdate(ctx, bson.M{"city": item.City}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return CityMedia{}, err
	}
	return updated, nil
}

func (r *MongoCitiesRepository) GetByCity(ctx context.Context, city string) (CityMedia, error) {
	var item CityMedia
	if err := r.col.FindOne(ctx, bson.M{"city": city}).Decode(&item); err != nil {
		return CityMedia{}, err
	}
	return item, nil
}

func (r *MongoCitiesRepository) List(ctx context.Context) ([]CityMedia, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "city", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]CityMedia, 0)
	for cursor.Next(ctx) {
		var item CityMedia
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
