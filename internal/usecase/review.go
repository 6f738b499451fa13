package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
)

type ReviewRepository interface {
	ListByBook(ctx context.Context, bookID primitive.ObjectID) ([]entity.ReviewWithAuthor, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]entity.ReviewWithBook, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (entity.Review, error)
	// Create inserts a review, returning ErrDuplicateReview if the user has
	// already reviewed the book. Uniqueness of (bookId, userId) is guaranteed
	// by the storage layer, not just by a pre-check.
	Create(ctx context.Context, rev *entity.Review) error
	// Update changes rating and text only.
	Update(ctx context.Context, id primitive.ObjectID, rating int, reviewText string) (entity.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
