package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreviews/internal/entity"
	"bookreviews/internal/httpx"
	"bookreviews/internal/usecase"
)

type BookHandler struct {
	books   usecase.BookRepository
	reviews usecase.ReviewRepository
	logger  *slog.Logger
}

func NewBookHandler(books usecase.BookRepository, reviews usecase.ReviewRepository, logger *slog.Logger) *BookHandler {
	return &BookHandler{books: books, reviews: reviews, logger: logger}
}

// List handles GET /api/books. Malformed pagination and unknown sort keys
// fall back to defaults; listing parameters never fail a request.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	params := usecase.ListParams{
		Search: q.Get("search"),
		Genre:  q.Get("genre"),
		SortBy: q.Get("sortBy"),
		Page:   page,
		Limit:  limit,
	}.Normalize()

	result, err := h.books.List(r.Context(), params)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ListBooksResponse{
		Success:    true,
		Count:      len(result.Items),
		Pagination: NewPagination(params.Page, params.Limit, result.Total),
		Total:      result.Total,
		Data:       result.Items,
		Genres:     result.Genres,
	})
}

type bookDetail struct {
	Book          entity.Book               `json:"book"`
	Reviews       []entity.ReviewWithAuthor `json:"reviews"`
	AverageRating float64                   `json:"averageRating"`
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"), "book not found")
	if !ok {
		return
	}

	book, err := h.books.GetByID(r.Context(), id)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "book not found", nil)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	ratings := make([]int, len(reviews))
	for i, rev := range reviews {
		ratings[i] = rev.Rating
	}

	JSONSuccess(w, bookDetail{
		Book:          book,
		Reviews:       reviews,
		AverageRating: usecase.AverageRating(ratings),
	})
}

type createBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Description string `json:"description" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	Year        int    `json:"year" validate:"required,gte=0"`
	CoverImage  string `json:"coverImage"`
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	book := entity.Book{
		Title:       body.Title,
		Author:      body.Author,
		Description: body.Description,
		Genre:       body.Genre,
		Year:        body.Year,
		CoverImage:  body.CoverImage,
		AddedBy:     userID,
	}
	if err := h.books.Create(r.Context(), &book); err != nil {
		h.serverError(w, r, err)
		return
	}

	JSONSuccessCreated(w, book)
}

type updateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Author      *string `json:"author" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Genre       *string `json:"genre" validate:"omitempty,min=1"`
	Year        *int    `json:"year" validate:"omitempty,gte=0"`
	CoverImage  *string `json:"coverImage"`
}

// Update handles PUT /api/books/{id}. Only the book's owner may update it;
// identity, owner, and creation time never change.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseObjectID(w, chi.URLParam(r, "id"), "book not found")
	if !ok {
		return
	}

	var body updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	book, err := h.books.GetByID(r.Context(), id)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "book not found", nil)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if book.AddedBy != userID {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authorized to update this book", nil)
		return
	}

	updated, err := h.books.Update(r.Context(), id, usecase.BookUpdate{
		Title:       body.Title,
		Author:      body.Author,
		Description: body.Description,
		Genre:       body.Genre,
		Year:        body.Year,
		CoverImage:  body.CoverImage,
	})
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "book not found", nil)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	JSONSuccess(w, updated)
}

// Delete handles DELETE /api/books/{id}. Owner only; dependent reviews are
// removed with the book.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseObjectID(w, chi.URLParam(r, "id"), "book not found")
	if !ok {
		return
	}

	book, err := h.books.GetByID(r.Context(), id)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "book not found", nil)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if book.AddedBy != userID {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authorized to delete this book", nil)
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil && !errors.Is(err, usecase.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}

	JSONSuccess(w, struct{}{})
}

func (h *BookHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	serverError(w, r, h.logger, err)
}

// parseObjectID writes a NotFound response for ids that cannot reference any
// document, mirroring how an unknown-but-well-formed id behaves.
func parseObjectID(w http.ResponseWriter, raw, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", notFoundMsg, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := httpx.UserIDFrom(r)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", httpx.RequestIDFrom(r)),
	)
	JSONError(w, http.StatusInternalServerError, "SERVER_ERROR", "server error", nil)
}
