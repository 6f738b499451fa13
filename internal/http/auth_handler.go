package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"bookreviews/internal/auth"
	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

type AuthHandler struct {
	users   usecase.UserRepository
	books   usecase.BookRepository
	reviews usecase.ReviewRepository
	secret  string
	ttl     time.Duration
	logger  *slog.Logger
}

func NewAuthHandler(users usecase.UserRepository, books usecase.BookRepository, reviews usecase.ReviewRepository, secret string, ttl time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		books:   books,
		reviews: reviews,
		secret:  secret,
		ttl:     ttl,
		logger:  logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	user := entity.User{Name: body.Name, Email: body.Email, Password: hash}
	err = h.users.Create(r.Context(), &user)
	if errors.Is(err, usecase.ErrEmailTaken) {
		JSONError(w, http.StatusBadRequest, "EMAIL_TAKEN", "user already exists", []ErrorDetail{
			{Field: "email", Message: "email already registered"},
		})
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	h.writeToken(w, r, user.ID.Hex())
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login. Unknown email and wrong password get
// the same answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), body.Email)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid credentials", nil)
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}
	if !auth.VerifyPassword(user.Password, body.Password) {
		JSONError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid credentials", nil)
		return
	}

	h.writeToken(w, r, user.ID.Hex())
}

type profileResponse struct {
	User         entity.User             `json:"user"`
	BooksCount   int                     `json:"booksCount"`
	ReviewsCount int                     `json:"reviewsCount"`
	Books        []entity.BookWithRating `json:"books"`
	Reviews      []entity.ReviewWithBook `json:"reviews"`
}

// Me handles GET /api/auth/me. The payload backs the profile page: the user
// plus their rating-enriched books and their reviews.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	books, err := h.books.ListByOwner(r.Context(), userID)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}
	reviews, err := h.reviews.ListByUser(r.Context(), userID)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	JSONSuccess(w, profileResponse{
		User:         user,
		BooksCount:   len(books),
		ReviewsCount: len(reviews),
		Books:        books,
		Reviews:      reviews,
	})
}

type updateDetailsRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateDetails handles PUT /api/auth/updatedetails.
func (h *AuthHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body updateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", details)
		return
	}

	user, err := h.users.UpdateDetails(r.Context(), userID, body.Name, body.Email)
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		return
	}
	if errors.Is(err, usecase.ErrEmailTaken) {
		JSONError(w, http.StatusBadRequest, "EMAIL_TAKEN", "email already registered", []ErrorDetail{
			{Field: "email", Message: "email already registered"},
		})
		return
	}
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	JSONSuccess(w, user)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, r *http.Request, userID string) {
	token, err := auth.GenerateToken(h.secret, userID, h.ttl)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Success: true, Token: token})
}
