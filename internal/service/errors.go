package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoListings       = errors.New("no open listings to match")
	ErrAIUnavailable    = errors.New("text generation gateway unavailable")
)
