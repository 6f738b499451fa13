package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

type ReviewHandler struct {
	reviews usecase.ReviewRepository
	books   usecase.BookRepository
	logger  *slog.Logger
}

func NewReviewHandler(reviews usecase.ReviewRepository, books usecase.BookRepository, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, books: books, logger: logger}
}

// ListByBook handles GET /api/reviews/{bookId}.
func (h *ReviewHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseObjectID(w, chi.URLParam(r, "id"), "book not found")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), bookID)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	JSONSuccess(w, reviews)
}

type createReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string `json:"reviewText"`
}

// Create handles POST /api/reviews/{bookId}. One review per user per book:
// a second attempt is rejected and the caller is pointed at the update path.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	bookID, ok := parseObjectID(w, chi.URLParam(r, "id"), "book not found")
	if !ok {
		return
	}

	var body createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	if _, err := h.books.GetByID(r.Context(), bookID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "book not found", nil)
			return
		}
		serverError(w, r, h.logger, err)
		return
	}

	review := entity.Review{
		Rating:     body.Rating,
		ReviewText: strings.TrimSpace(body.ReviewText),
		BookID:     bookID,
		UserID:     userID,
	}
	err := h.reviews.Create(r.Context(), &review)
	if errors.Is(err, usecase.ErrDuplicateReview) {
		JSONError(w, http.StatusBadRequest, "DUPLICATE_REVIEW",
			"you have already reviewed this book; use the update review endpoint to modify your review", nil)
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	JSONSuccessCreated(w, review)
}

type updateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string `json:"reviewText"`
}

// Update handles PUT /api/reviews/{id}. Author only; changes rating and text,
// never identity or ownership.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseObjectID(w, chi.URLParam(r, "id"), "review not found")
	if !ok {
		return
	}

	var body updateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	review, err := h.reviews.GetByID(r.Context(), id)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "review not found", nil)
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}
	if review.UserID != userID {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authorized to update this review", nil)
		return
	}

	updated, err := h.reviews.Update(r.Context(), id, body.Rating, strings.TrimSpace(body.ReviewText))
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "review not found", nil)
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	JSONSuccess(w, updated)
}

// Delete handles DELETE /api/reviews/{id}. Author only.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseObjectID(w, chi.URLParam(r, "id"), "review not found")
	if !ok {
		return
	}

	review, err := h.reviews.GetByID(r.Context(), id)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "review not found", nil)
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}
	if review.UserID != userID {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authorized to delete this review", nil)
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil && !errors.Is(err, usecase.ErrNotFound) {
		serverError(w, r, h.logger, err)
		return
	}

	JSONSuccess(w, struct{}{})
}
