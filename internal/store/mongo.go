package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	booksCollection   = "books"
	reviewsCollection = "reviews"
	usersCollection   = "users"
)

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the write path relies on. The unique
// compound index on (bookId, userId) is what actually guarantees one review
// per user per book; the handler-level pre-check only exists for a friendlier
// error message.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(reviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bookId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_book_user"),
	})
	if err != nil {
		return fmt.Errorf("create review index: %w", err)
	}

	_, err = db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}

	_, err = db.Collection(booksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "genre", Value: 1}},
		Options: options.Index().SetName("genre"),
	})
	if err != nil {
		return fmt.Errorf("create book index: %w", err)
	}
	return nil
}
