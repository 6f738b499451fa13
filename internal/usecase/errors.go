package usecase

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrDuplicateReview = errors.New("review already exists for this user and book")
	ErrEmailTaken      = errors.New("email already registered")
)
