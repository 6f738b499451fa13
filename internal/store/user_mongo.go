package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

type UserMongo struct {
	users *mongo.Collection
}

func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{users: db.Collection(usersCollection)}
}

func (r *UserMongo) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := r.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return usecase.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *UserMongo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var u entity.User
	err := r.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.User{}, usecase.ErrNotFound
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserMongo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.User, error) {
	var u entity.User
	err := r.users.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.User{}, usecase.ErrNotFound
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserMongo) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, email string) (entity.User, error) {
	var u entity.User
	err := r.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: name},
			{Key: "email", Value: email},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.User{}, usecase.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return entity.User{}, usecase.ErrEmailTaken
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}
