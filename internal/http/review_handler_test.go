package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreviews/internal/entity"
	"bookreviews/internal/testutil"
	"bookreviews/internal/usecase"
)

func TestReviewHandler_ListByBook(t *testing.T) {
	rev := testutil.Review()

	reviews := new(mockReviewRepo)
	reviews.On("ListByBook", mock.Anything, testutil.BookID).Return([]entity.ReviewWithAuthor{
		{Review: rev, AuthorName: "Rahul Mehta"},
	}, nil)

	router := newTestRouter(new(mockBookRepo), reviews, new(mockUserRepo))
	rec := doRequest(t, router, http.MethodGet, "/api/reviews/"+testutil.BookID.Hex(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    []entity.ReviewWithAuthor `json:"data"`
	}
	decodeBody(t, rec, &resp)

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Rahul Mehta", resp.Data[0].AuthorName)
	assert.Equal(t, rev.Rating, resp.Data[0].Rating)
}

func TestReviewHandler_Create(t *testing.T) {
	book := testutil.Book()

	t.Run("creates for the caller and trims the text", func(t *testing.T) {
		books := new(mockBookRepo)
		reviews := new(mockReviewRepo)
		books.On("GetByID", mock.Anything, book.ID).Return(book, nil)
		reviews.On("Create", mock.Anything, mock.MatchedBy(func(rev *entity.Review) bool {
			return rev.BookID == book.ID &&
				rev.UserID == testutil.OtherUserID &&
				rev.Rating == 4 &&
				rev.ReviewText == "A fine read."
		})).Return(nil)

		router := newTestRouter(books, reviews, new(mockUserRepo))
		body := []byte(`{"rating":4,"reviewText":"  A fine read.  "}`)
		rec := doRequest(t, router, http.MethodPost, "/api/reviews/"+book.ID.Hex(), body, &testutil.OtherUserID)

		assert.Equal(t, http.StatusCreated, rec.Code)
		reviews.AssertExpectations(t)
	})

	t.Run("second review for the same book is rejected", func(t *testing.T) {
		books := new(mockBookRepo)
		reviews := new(mockReviewRepo)
		books.On("GetByID", mock.Anything, book.ID).Return(book, nil)
		reviews.On("Create", mock.Anything, mock.Anything).Return(usecase.ErrDuplicateReview)

		router := newTestRouter(books, reviews, new(mockUserRepo))
		body := []byte(`{"rating":5}`)
		rec := doRequest(t, router, http.MethodPost, "/api/reviews/"+book.ID.Hex(), body, &testutil.OtherUserID)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "DUPLICATE_REVIEW", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "update review")
	})

	t.Run("unknown book is not found", func(t *testing.T) {
		books := new(mockBookRepo)
		books.On("GetByID", mock.Anything, mock.Anything).Return(entity.Book{}, usecase.ErrNotFound)

		router := newTestRouter(books, new(mockReviewRepo), new(mockUserRepo))
		body := []byte(`{"rating":3}`)
		rec := doRequest(t, router, http.MethodPost, "/api/reviews/"+testutil.BookID.Hex(), body, &testutil.OtherUserID)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rating outside 1..5 fails validation", func(t *testing.T) {
		for _, body := range []string{`{"rating":0}`, `{"rating":6}`} {
			router := newTestRouter(new(mockBookRepo), new(mockReviewRepo), new(mockUserRepo))
			rec := doRequest(t, router, http.MethodPost, "/api/reviews/"+testutil.BookID.Hex(), []byte(body), &testutil.OtherUserID)

			require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)

			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code, "body %s", body)
		}
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		router := newTestRouter(new(mockBookRepo), new(mockReviewRepo), new(mockUserRepo))
		rec := doRequest(t, router, http.MethodPost, "/api/reviews/"+testutil.BookID.Hex(), []byte(`{"rating":3}`), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestReviewHandler_Update(t *testing.T) {
	rev := testutil.Review() // authored by testutil.OtherUserID

	t.Run("author updates rating and text", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		updated := rev
		updated.Rating = 3
		updated.ReviewText = "On reflection, solid but uneven."
		reviews.On("GetByID", mock.Anything, rev.ID).Return(rev, nil)
		reviews.On("Update", mock.Anything, rev.ID, 3, "On reflection, solid but uneven.").Return(updated, nil)

		router := newTestRouter(new(mockBookRepo), reviews, new(mockUserRepo))
		body := []byte(`{"rating":3,"reviewText":"On reflection, solid but uneven."}`)
		rec := doRequest(t, router, http.MethodPut, "/api/reviews/"+rev.ID.Hex(), body, &testutil.OtherUserID)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data entity.Review `json:"data"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, 3, resp.Data.Rating)
		reviews.AssertExpectations(t)
	})

	t.Run("non-author is rejected", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		reviews.On("GetByID", mock.Anything, rev.ID).Return(rev, nil)

		router := newTestRouter(new(mockBookRepo), reviews, new(mockUserRepo))
		body := []byte(`{"rating":1,"reviewText":"sabotage"}`)
		rec := doRequest(t, router, http.MethodPut, "/api/reviews/"+rev.ID.Hex(), body, &testutil.UserID)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown review is not found", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		reviews.On("GetByID", mock.Anything, mock.Anything).Return(entity.Review{}, usecase.ErrNotFound)

		router := newTestRouter(new(mockBookRepo), reviews, new(mockUserRepo))
		body := []byte(`{"rating":4}`)
		rec := doRequest(t, router, http.MethodPut, "/api/reviews/"+testutil.ReviewID.Hex(), body, &testutil.OtherUserID)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReviewHandler_Delete(t *testing.T) {
	rev := testutil.Review()

	t.Run("author deletes", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		reviews.On("GetByID", mock.Anything, rev.ID).Return(rev, nil)
		reviews.On("Delete", mock.Anything, rev.ID).Return(nil)

		router := newTestRouter(new(mockBookRepo), reviews, new(mockUserRepo))
		rec := doRequest(t, router, http.MethodDelete, "/api/reviews/"+rev.ID.Hex(), nil, &testutil.OtherUserID)

		assert.Equal(t, http.StatusOK, rec.Code)
		reviews.AssertExpectations(t)
	})

	t.Run("non-author is rejected", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		reviews.On("GetByID", mock.Anything, rev.ID).Return(rev, nil)

		router := newTestRouter(new(mockBookRepo), reviews, new(mockUserRepo))
		rec := doRequest(t, router, http.MethodDelete, "/api/reviews/"+rev.ID.Hex(), nil, &testutil.UserID)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
