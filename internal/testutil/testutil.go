package testutil

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/auth"
	"bookreviews/internal/entity"
)

// Deterministic ids so tests can assert on ownership checks.
var (
	UserID      = mustObjectID("65a000000000000000000001")
	OtherUserID = mustObjectID("65a000000000000000000002")
	BookID      = mustObjectID("65b000000000000000000001")
	ReviewID    = mustObjectID("65c000000000000000000001")
)

func mustObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return id
}

func User() entity.User {
	return entity.User{
		ID:        UserID,
		Name:      "Ananya Rao",
		Email:     "ananya@example.com",
		Password:  "$2a$10$notarealhashnotarealhashnotarealhash",
		CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func Book() entity.Book {
	return entity.Book{
		ID:          BookID,
		Title:       "Rivers Remember",
		Author:      "Miriam Blake",
		Description: "Eco-history meets memoir across five rivers.",
		Genre:       "Non-fiction",
		Year:        2018,
		AddedBy:     UserID,
		CreatedAt:   time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func Review() entity.Review {
	return entity.Review{
		ID:         ReviewID,
		Rating:     5,
		ReviewText: "Essential reading for climate conversations.",
		BookID:     BookID,
		UserID:     OtherUserID,
		CreatedAt:  time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
	}
}

// Token mints a valid bearer token for the given user.
func Token(secret string, userID primitive.ObjectID) string {
	token, err := auth.GenerateToken(secret, userID.Hex(), time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}
