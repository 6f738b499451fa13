package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

// BookMongo implements usecase.BookRepository against the books collection.
// It also holds the reviews collection: rating aggregates are joined in at
// query time and deleting a book cascades to its reviews.
type BookMongo struct {
	books   *mongo.Collection
	reviews *mongo.Collection
}

func NewBookMongo(db *mongo.Database) *BookMongo {
	return &BookMongo{
		books:   db.Collection(booksCollection),
		reviews: db.Collection(reviewsCollection),
	}
}

// enrichStages joins each book's reviews and derives averageRating and
// reviewsCount in one pass, so a listing of N books costs one query rather
// than N+1. The joined array is projected back out.
func enrichStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: reviewsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "bookId"},
			{Key: "as", Value: "reviews"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "averageRating", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{bson.D{{Key: "$avg", Value: "$reviews.rating"}}, 0.0}},
			}},
			{Key: "reviewsCount", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "reviews", Value: 0}}}},
	}
}

// listPipeline builds the match+enrich+sort stages for the given parameters.
// The trailing _id key on every sort makes ties deterministic across
// repeated calls against unchanged data.
func listPipeline(p usecase.ListParams) mongo.Pipeline {
	match := bson.D{}
	if p.Search != "" {
		pattern := regexp.QuoteMeta(p.Search)
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: bson.D{
				{Key: "$regex", Value: pattern},
				{Key: "$options", Value: "i"},
			}}},
			bson.D{{Key: "author", Value: bson.D{
				{Key: "$regex", Value: pattern},
				{Key: "$options", Value: "i"},
			}}},
		}})
	}
	if p.Genre != "" {
		match = append(match, bson.E{Key: "genre", Value: p.Genre})
	}

	pipe := mongo.Pipeline{bson.D{{Key: "$match", Value: match}}}
	pipe = append(pipe, enrichStages()...)

	// The sort must run on the enriched documents, before pagination
	// truncates them, so sort-by-rating sees every candidate's aggregate.
	var sortDoc bson.D
	switch p.SortBy {
	case usecase.SortYear:
		sortDoc = bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: -1}}
	case usecase.SortRating:
		sortDoc = bson.D{{Key: "averageRating", Value: -1}, {Key: "_id", Value: -1}}
	default:
		sortDoc = bson.D{{Key: "_id", Value: -1}}
	}
	return append(pipe, bson.D{{Key: "$sort", Value: sortDoc}})
}

func (r *BookMongo) List(ctx context.Context, p usecase.ListParams) (usecase.ListResult, error) {
	p = p.Normalize()

	// Genre choices span all books, ignoring the current filter.
	rawGenres, err := r.books.Distinct(ctx, "genre", bson.D{})
	if err != nil {
		return usecase.ListResult{}, fmt.Errorf("distinct genres: %w", err)
	}
	genres := make([]string, 0, len(rawGenres))
	for _, g := range rawGenres {
		if s, ok := g.(string); ok {
			genres = append(genres, s)
		}
	}
	sort.Strings(genres)

	// One facet query yields the page and the total match count together.
	pipe := append(listPipeline(p), bson.D{{Key: "$facet", Value: bson.D{
		{Key: "data", Value: bson.A{
			bson.D{{Key: "$skip", Value: p.Skip()}},
			bson.D{{Key: "$limit", Value: p.Limit}},
		}},
		{Key: "totalCount", Value: bson.A{
			bson.D{{Key: "$count", Value: "count"}},
		}},
	}}})

	cur, err := r.books.Aggregate(ctx, pipe)
	if err != nil {
		return usecase.ListResult{}, fmt.Errorf("aggregate books: %w", err)
	}
	defer cur.Close(ctx)

	var out []struct {
		Data       []entity.BookWithRating `bson:"data"`
		TotalCount []struct {
			Count int `bson:"count"`
		} `bson:"totalCount"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return usecase.ListResult{}, fmt.Errorf("decode books: %w", err)
	}

	result := usecase.ListResult{Items: []entity.BookWithRating{}, Genres: genres}
	if len(out) > 0 {
		if out[0].Data != nil {
			result.Items = out[0].Data
		}
		if len(out[0].TotalCount) > 0 {
			result.Total = out[0].TotalCount[0].Count
		}
	}
	return result, nil
}

func (r *BookMongo) ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]entity.BookWithRating, error) {
	pipe := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{{Key: "addedBy", Value: userID}}}}}
	pipe = append(pipe, enrichStages()...)
	pipe = append(pipe, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}})

	cur, err := r.books.Aggregate(ctx, pipe)
	if err != nil {
		return nil, fmt.Errorf("aggregate owner books: %w", err)
	}
	defer cur.Close(ctx)

	books := []entity.BookWithRating{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode owner books: %w", err)
	}
	return books, nil
}

func (r *BookMongo) GetByID(ctx context.Context, id primitive.ObjectID) (entity.Book, error) {
	var b entity.Book
	err := r.books.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Book{}, usecase.ErrNotFound
	}
	if err != nil {
		return entity.Book{}, fmt.Errorf("find book: %w", err)
	}
	return b, nil
}

func (r *BookMongo) Create(ctx context.Context, b *entity.Book) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	res, err := r.books.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (r *BookMongo) Update(ctx context.Context, id primitive.ObjectID, upd usecase.BookUpdate) (entity.Book, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *upd.Author})
	}
	if upd.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *upd.Description})
	}
	if upd.Genre != nil {
		set = append(set, bson.E{Key: "genre", Value: *upd.Genre})
	}
	if upd.Year != nil {
		set = append(set, bson.E{Key: "year", Value: *upd.Year})
	}
	if upd.CoverImage != nil {
		set = append(set, bson.E{Key: "coverImage", Value: *upd.CoverImage})
	}

	var b entity.Book
	err := r.books.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Book{}, usecase.ErrNotFound
	}
	if err != nil {
		return entity.Book{}, fmt.Errorf("update book: %w", err)
	}
	return b, nil
}

// Delete removes the book, then its reviews. The store offers no referential
// integrity, so the cascade is an explicit second step; if the process dies
// between the two, orphaned reviews are invisible to listings but linger
// until the next delete of the same id.
func (r *BookMongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.books.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	if _, err := r.reviews.DeleteMany(ctx, bson.D{{Key: "bookId", Value: id}}); err != nil {
		return fmt.Errorf("delete book reviews: %w", err)
	}
	return nil
}
