package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	Articles         *mongo.Collection
	Courses          *mongo.Collection
	Instructors      *mongo.Collection
	Accreditations   *mongo.Collection
	LeadingCompanies *mongo.Collection
	HomeMedia        *mongo.Collection
	CitiesMedia      *mongo.Collection
	Bookings         *mongo.Collection
	GeneralLinks     *mongo.Collection
	Users            *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		Articles:         db.Collection("articles"),
		Courses:          db.Collection("courses"),
		Instructors:      db.Collection("instructors"),
		Accreditations:   db.Collection("accreditations"),
		LeadingCompanies: db.Collection("leading_companies"),
		HomeMedia:        db.Collection("home_media"),
		CitiesMedia:      db.Collection("cities_media"),
		Bookings:         db.Collection("bookings"),
		GeneralLinks:     db.Collection("general_links"),
		Users:            db.Collection("users"),
	}

	return client, cols, nil
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slugIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug_en", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "slug_ar", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	if _, err := cols.Articles.Indexes().CreateMany(indexTimeout, slugIndexes); err != nil {
		return err
	}

	courseIndexes := append(slugIndexes, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if _, err := cols.Courses.Indexes().CreateMany(indexTimeout, courseIndexes); err != nil {
		return err
	}

	logoIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_en", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name_ar", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "logo.public_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := cols.Accreditations.Indexes().CreateMany(indexTimeout, logoIndexes); err != nil {
		return err
	}
	if _, err := cols.LeadingCompanies.Indexes().CreateMany(indexTimeout, logoIndexes); err != nil {
		return err
	}

	_, err := cols.CitiesMedia.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "city", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Bookings.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "viewed", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Users.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
