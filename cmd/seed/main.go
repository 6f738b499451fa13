// Command seed wipes the database and loads a small demo data set: five
// users, eight books across distinct genres, and ten reviews.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"bookreviews/internal/auth"
	"bookreviews/internal/config"
	"bookreviews/internal/entity"
	"bookreviews/internal/store"
)

const seedPassword = "password123"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	for _, name := range []string{"reviews", "books", "users"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			logger.Error("drop collection", slog.String("collection", name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Error("ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	users := store.NewUserMongo(db)
	books := store.NewBookMongo(db)
	reviews := store.NewReviewMongo(db)

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		logger.Error("hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	seedUsers := []entity.User{
		{Name: "Ananya Rao", Email: "ananya@logiksutra.com", Password: hash},
		{Name: "Rahul Mehta", Email: "rahul@logiksutra.com", Password: hash},
		{Name: "Priya Nair", Email: "priya@logiksutra.com", Password: hash},
		{Name: "Neha Singh", Email: "neha@logiksutra.com", Password: hash},
		{Name: "Vikram Joshi", Email: "vikram@logiksutra.com", Password: hash},
	}
	for i := range seedUsers {
		if err := users.Create(ctx, &seedUsers[i]); err != nil {
			logger.Error("create user", slog.String("email", seedUsers[i].Email), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	seedBooks := []entity.Book{
		{
			Title:       "The Quantum Mind",
			Author:      "Dr. Elena Vasquez",
			Description: "A tour of what modern physics can and cannot say about consciousness.",
			Genre:       "Science",
			Year:        2021,
			AddedBy:     seedUsers[0].ID,
		},
		{
			Title:       "Letters to a Restless City",
			Author:      "Farid Qureshi",
			Description: "Interlinked letters trace three generations through a changing metropolis.",
			Genre:       "Fiction",
			Year:        2019,
			AddedBy:     seedUsers[1].ID,
		},
		{
			Title:       "Mindful Metrics",
			Author:      "Sandra Okafor",
			Description: "Measuring what matters without letting the measures take over.",
			Genre:       "Business",
			Year:        2022,
			AddedBy:     seedUsers[2].ID,
		},
		{
			Title:       "Rivers Remember",
			Author:      "Miriam Blake",
			Description: "Eco-history meets memoir across five rivers.",
			Genre:       "Non-fiction",
			Year:        2018,
			AddedBy:     seedUsers[0].ID,
		},
		{
			Title:       "The Algorithmic Bard",
			Author:      "Tomas Lindqvist",
			Description: "A court poet discovers his verses are being completed by something that is not human.",
			Genre:       "Fantasy",
			Year:        2020,
			AddedBy:     seedUsers[3].ID,
		},
		{
			Title:       "Breakfast at Lunar Base",
			Author:      "June Park",
			Description: "Domestic life, sixty years into the Moon settlement program.",
			Genre:       "Science Fiction",
			Year:        2024,
			AddedBy:     seedUsers[4].ID,
		},
		{
			Title:       "Sketches of Stillness",
			Author:      "Hiro Tanaka",
			Description: "Short practices for attention, drawn from a decade of teaching.",
			Genre:       "Self-help",
			Year:        2023,
			AddedBy:     seedUsers[2].ID,
		},
		{
			Title:       "Monsoon Dialogues",
			Author:      "Arun Pillai",
			Description: "Interviews with climate activists across coastal South Asia.",
			Genre:       "Non-fiction",
			Year:        2020,
			AddedBy:     seedUsers[1].ID,
		},
	}
	for i := range seedBooks {
		if err := books.Create(ctx, &seedBooks[i]); err != nil {
			logger.Error("create book", slog.String("title", seedBooks[i].Title), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	seedReviews := []struct {
		book   int
		user   int
		rating int
		text   string
	}{
		{0, 1, 4, "Rigorous where it can be, honest where it cannot."},
		{0, 3, 5, "The clearest account of the hard problem I have read."},
		{1, 0, 5, "Each letter lands like a small novel."},
		{2, 4, 4, "Finally a metrics book that admits Goodhart exists."},
		{3, 1, 5, "Essential reading for climate conversations."},
		{4, 0, 3, "Lovely premise, uneven middle third."},
		{5, 2, 4, "Quietly moving; the lunar kitchen scenes stay with you."},
		{1, 3, 4, "Restless indeed, in the best way."},
		{7, 0, 4, "The Kochi interviews alone are worth the cover price."},
		{7, 2, 5, "Journalism with the patience of a field study."},
	}
	for _, s := range seedReviews {
		rev := entity.Review{
			Rating:     s.rating,
			ReviewText: s.text,
			BookID:     seedBooks[s.book].ID,
			UserID:     seedUsers[s.user].ID,
		}
		if err := reviews.Create(ctx, &rev); err != nil {
			logger.Error("create review",
				slog.String("book", seedBooks[s.book].Title),
				slog.String("user", seedUsers[s.user].Email),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("seed complete",
		slog.Int("users", len(seedUsers)),
		slog.Int("books", len(seedBooks)),
		slog.Int("reviews", len(seedReviews)),
	)
}
