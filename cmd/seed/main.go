package main

import (
	"context"
	"log"
	"os"
	"time"

	"academy-backend/internal/auth"
	"academy-backend/internal/config"
	"academy-backend/internal/db"
	"academy-backend/internal/sitemedia"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	if err := seedAdminUser(ctx, cols, cfg.AdminUser, os.Getenv("ADMIN_EMAIL"), cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	if err := seedGeneralLinks(ctx, cols); err != nil {
		log.Fatalf("seed links error: %v", err)
	}

	if err := seedCitySlots(ctx, cols); err != nil {
		log.Fatalf("seed cities error: %v", err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string) error {
	if username == "" || password == "" {
		log.Println("seed admin: ADMIN_USER/ADMIN_PASSWORD missing, skipping")
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	// insert-only: a rerun never touches an existing admin's credentials
	setOnInsert := bson.M{
		"_id":           primitive.NewObjectID().Hex(),
		"username":      username,
		"password_hash": hash,
		"role":          "admin",
		"created_at":    time.Now().UTC(),
	}
	if email != "" {
		setOnInsert["email"] = email
	}
	update := bson.M{"$setOnInsert": setOnInsert}
	_, err = cols.Users.UpdateOne(ctx, bson.M{"username": username}, update, options.Update().SetUpsert(true))
	return err
}

func seedGeneralLinks(ctx context.Context, cols *db.Collections) error {
	update := bson.M{
		"$setOnInsert": bson.M{
			"facebook":   "",
			"twitter":    "",
			"instagram":  "",
			"linkedin":   "",
			"youtube":    "",
			"whatsapp":   "",
			"telegram":   "",
			"snapchat":   "",
			"tiktok":     "",
			"updated_at": time.Now().UTC(),
		},
	}
	_, err := cols.GeneralLinks.UpdateOne(ctx, bson.M{"_id": "general"}, update, options.Update().SetUpsert(true))
	return err
}

func seedCitySlots(ctx context.Context, cols *db.Collections) error {
	now := time.Now().UTC()
	for _, slot := range sitemedia.CitySlots {
		update := bson.M{
			"$setOnInsert": bson.M{
				"city":       slot,
				"media_url":  "",
				"public_id":  "",
				"updated_at": now,
			},
		}
		if _, err := cols.CitiesMedia.UpdateOne(ctx, bson.M{"city": slot}, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}
