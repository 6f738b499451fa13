package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
)

type UserRepository interface {
	// Create inserts a user, returning ErrEmailTaken if the email is
	// already registered.
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (entity.User, error)
	// UpdateDetails changes name and email only.
	UpdateDetails(ctx context.Context, id primitive.ObjectID, name, email string) (entity.User, error)
}
