package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Author      string             `json:"author" bson:"author"`
	Description string             `json:"description" bson:"description"`
	Genre       string             `json:"genre" bson:"genre"`
	Year        int                `json:"year" bson:"year"`
	CoverImage  string             `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	AddedBy     primitive.ObjectID `json:"addedBy" bson:"addedBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookWithRating is a Book enriched at read time with its review aggregate.
// averageRating and reviewsCount are computed per query and never persisted
// on the books collection.
type BookWithRating struct {
	Book          `bson:",inline"`
	AverageRating float64 `json:"averageRating" bson:"averageRating"`
	ReviewsCount  int     `json:"reviewsCount" bson:"reviewsCount"`
}
