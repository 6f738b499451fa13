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

type ReviewMongo struct {
	reviews *mongo.Collection
}

func NewReviewMongo(db *mongo.Database) *ReviewMongo {
	return &ReviewMongo{reviews: db.Collection(reviewsCollection)}
}

func (r *ReviewMongo) ListByBook(ctx context.Context, bookID primitive.ObjectID) ([]entity.ReviewWithAuthor, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "bookId", Value: bookID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "authorName", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$arrayElemAt", Value: bson.A{"$author.name", 0}}},
					"",
				}},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "author", Value: 0}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.reviews.Aggregate(ctx, pipe)
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews: %w", err)
	}
	defer cur.Close(ctx)

	reviews := []entity.ReviewWithAuthor{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewMongo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]entity.ReviewWithBook, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: booksCollection},
			{Key: "localField", Value: "bookId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "book"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "bookTitle", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$arrayElemAt", Value: bson.A{"$book.title", 0}}},
					"",
				}},
			}},
			{Key: "bookAuthor", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$arrayElemAt", Value: bson.A{"$book.author", 0}}},
					"",
				}},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "book", Value: 0}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
	}

	cur, err := r.reviews.Aggregate(ctx, pipe)
	if err != nil {
		return nil, fmt.Errorf("aggregate user reviews: %w", err)
	}
	defer cur.Close(ctx)

	reviews := []entity.ReviewWithBook{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode user reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewMongo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.Review, error) {
	var rev entity.Review
	err := r.reviews.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Review{}, usecase.ErrNotFound
	}
	if err != nil {
		return entity.Review{}, fmt.Errorf("find review: %w", err)
	}
	return rev, nil
}

func (r *ReviewMongo) Create(ctx context.Context, rev *entity.Review) error {
	// Pre-check for a clean error message on the common path. The unique
	// index on (bookId, userId) closes the race two concurrent inserts
	// would otherwise win together.
	count, err := r.reviews.CountDocuments(ctx, bson.D{
		{Key: "bookId", Value: rev.BookID},
		{Key: "userId", Value: rev.UserID},
	})
	if err != nil {
		return fmt.Errorf("check existing review: %w", err)
	}
	if count > 0 {
		return usecase.ErrDuplicateReview
	}

	now := time.Now().UTC()
	rev.CreatedAt = now
	rev.UpdatedAt = now

	res, err := r.reviews.InsertOne(ctx, rev)
	if mongo.IsDuplicateKeyError(err) {
		return usecase.ErrDuplicateReview
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rev.ID = oid
	}
	return nil
}

func (r *ReviewMongo) Update(ctx context.Context, id primitive.ObjectID, rating int, reviewText string) (entity.Review, error) {
	var rev entity.Review
	err := r.reviews.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: rating},
			{Key: "reviewText", Value: reviewText},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Review{}, usecase.ErrNotFound
	}
	if err != nil {
		return entity.Review{}, fmt.Errorf("update review: %w", err)
	}
	return rev, nil
}

func (r *ReviewMongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.reviews.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
