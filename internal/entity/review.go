package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Rating     int                `json:"rating" bson:"rating"`
	ReviewText string             `json:"reviewText" bson:"reviewText"`
	BookID     primitive.ObjectID `json:"bookId" bson:"bookId"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReviewWithAuthor carries the reviewer's display name joined from the users
// collection.
type ReviewWithAuthor struct {
	Review     `bson:",inline"`
	AuthorName string `json:"authorName" bson:"authorName"`
}

// ReviewWithBook carries the reviewed book's title and author, used on
// profile pages.
type ReviewWithBook struct {
	Review     `bson:",inline"`
	BookTitle  string `json:"bookTitle" bson:"bookTitle"`
	BookAuthor string `json:"bookAuthor" bson:"bookAuthor"`
}
