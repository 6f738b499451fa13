package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/httpx"
	"bookreviews/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the API routes without the outer middleware chain;
// authentication is simulated by injecting the user id directly.
func newTestRouter(books usecase.BookRepository, reviews usecase.ReviewRepository, users usecase.UserRepository) chi.Router {
	logger := testLogger()
	bh := NewBookHandler(books, reviews, logger)
	rh := NewReviewHandler(reviews, books, logger)
	ah := NewAuthHandler(users, books, reviews, "test-secret", time.Hour, logger)

	r := chi.NewRouter()
	r.Post("/api/auth/register", ah.Register)
	r.Post("/api/auth/login", ah.Login)
	r.Get("/api/auth/me", ah.Me)
	r.Put("/api/auth/updatedetails", ah.UpdateDetails)

	r.Get("/api/books/", bh.List)
	r.Post("/api/books/", bh.Create)
	r.Get("/api/books/{id}", bh.Get)
	r.Put("/api/books/{id}", bh.Update)
	r.Delete("/api/books/{id}", bh.Delete)

	r.Get("/api/reviews/{id}", rh.ListByBook)
	r.Post("/api/reviews/{id}", rh.Create)
	r.Put("/api/reviews/{id}", rh.Update)
	r.Delete("/api/reviews/{id}", rh.Delete)
	return r
}

// doRequest executes a request against the router, optionally as an
// authenticated user, and returns the recorder.
func doRequest(t *testing.T, router chi.Router, method, target string, body []byte, userID *primitive.ObjectID) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != nil {
		req = req.WithContext(httpx.ContextWithUserID(context.Background(), userID.Hex()))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
