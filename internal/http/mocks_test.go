package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) List(ctx context.Context, p usecase.ListParams) (usecase.ListResult, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(usecase.ListResult), args.Error(1)
}

func (m *mockBookRepo) ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]entity.BookWithRating, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.BookWithRating), args.Error(1)
}

func (m *mockBookRepo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Book), args.Error(1)
}

func (m *mockBookRepo) Create(ctx context.Context, b *entity.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookRepo) Update(ctx context.Context, id primitive.ObjectID, upd usecase.BookUpdate) (entity.Book, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(entity.Book), args.Error(1)
}

func (m *mockBookRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) ListByBook(ctx context.Context, bookID primitive.ObjectID) ([]entity.ReviewWithAuthor, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]entity.ReviewWithAuthor), args.Error(1)
}

func (m *mockReviewRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]entity.ReviewWithBook, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.ReviewWithBook), args.Error(1)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Review), args.Error(1)
}

func (m *mockReviewRepo) Create(ctx context.Context, rev *entity.Review) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *mockReviewRepo) Update(ctx context.Context, id primitive.ObjectID, rating int, reviewText string) (entity.Review, error) {
	args := m.Called(ctx, id, rating, reviewText)
	return args.Get(0).(entity.Review), args.Error(1)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *mockUserRepo) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, email string) (entity.User, error) {
	args := m.Called(ctx, id, name, email)
	return args.Get(0).(entity.User), args.Error(1)
}
