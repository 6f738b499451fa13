package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
)

const (
	SortRecency = ""       // creation order, most recent first
	SortYear    = "year"   // publication year descending
	SortRating  = "rating" // computed average rating descending

	DefaultPage  = 1
	DefaultLimit = 5
)

// ListParams holds the filter, sort, and pagination inputs for a book
// listing. Zero values mean "no filter" and the defaults above.
type ListParams struct {
	Search string
	Genre  string
	SortBy string
	Page   int
	Limit  int
}

// Normalize replaces out-of-range pagination values with the defaults and
// unknown sort keys with recency. Listing never rejects its parameters.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.SortBy != SortYear && p.SortBy != SortRating {
		p.SortBy = SortRecency
	}
	return p
}

// Skip returns the offset implied by page and limit.
func (p ListParams) Skip() int {
	return (p.Page - 1) * p.Limit
}

// ListResult is one page of enriched books together with the total match
// count and the set of distinct genres across all books (unfiltered).
type ListResult struct {
	Items  []entity.BookWithRating
	Total  int
	Genres []string
}

// BookUpdate is a partial update; nil fields are left untouched. Identity,
// owner, and creation time are not updatable.
type BookUpdate struct {
	Title       *string
	Author      *string
	Description *string
	Genre       *string
	Year        *int
	CoverImage  *string
}

type BookRepository interface {
	// List filters, enriches, sorts, and paginates books in one logical
	// operation (page + total count computed together).
	List(ctx context.Context, p ListParams) (ListResult, error)
	// ListByOwner returns all books added by a user, enriched, most recent
	// first.
	ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]entity.BookWithRating, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, id primitive.ObjectID, upd BookUpdate) (entity.Book, error)
	// Delete removes the book and its dependent reviews.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
